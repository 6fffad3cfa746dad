package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/apconnect/directory-api/internal/model"
)

// AHPRA registration numbers are a three letter profession prefix and ten digits.
var ahpraPattern = regexp.MustCompile(`^[A-Za-z]{3}[0-9]{10}$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the directory's custom tags to v and reports fields by their json name.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("austate", validateState); err != nil {
		return fmt.Errorf("failed to register austate: %w", err)
	}
	if err := v.RegisterValidation("ahpra", validateAHPRA); err != nil {
		return fmt.Errorf("failed to register ahpra: %w", err)
	}
	return nil
}

// RegisterBinding installs the custom tags on gin's binding validator. Safe to call repeatedly.
func RegisterBinding() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected binding validator engine")
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

func validateState(fl validator.FieldLevel) bool {
	return model.IsStateCode(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}

func validateAHPRA(fl validator.FieldLevel) bool {
	return ahpraPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

var messages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"numeric":  "must be numeric",
	"austate":  "must be an Australian state or territory code",
	"ahpra":    "must be a valid AHPRA registration number",
	"datetime": "must be a date in YYYY-MM-DD format",
}

// Describe turns binding errors into a short client-facing message.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		switch {
		case ok:
		case fe.Tag() == "min":
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		case fe.Tag() == "len":
			msg = fmt.Sprintf("must be %s characters", fe.Param())
		default:
			msg = "is invalid"
		}
		parts = append(parts, fe.Field()+" "+msg)
	}
	return strings.Join(parts, ", ")
}
