package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Timestamps adds the update time to Base
type Timestamps struct {
	Base
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Checkbox is a boolean submitted by an HTML checkbox. Browsers send "on"
// when checked and omit the field otherwise.
type Checkbox bool

func parseCheckbox(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form and query values.
func (c *Checkbox) UnmarshalParam(param string) error {
	*c = Checkbox(parseCheckbox(param))
	return nil
}

// UnmarshalJSON accepts both JSON booleans and checkbox strings.
func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Checkbox(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid checkbox value %s", string(data))
	}
	*c = Checkbox(parseCheckbox(s))
	return nil
}

// Bool returns the plain value.
func (c Checkbox) Bool() bool { return bool(c) }

// Value implements driver.Valuer.
func (c Checkbox) Value() (driver.Value, error) { return bool(c), nil }

// NullString returns nil for blank input, otherwise a pointer to the trimmed value.
func NullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
