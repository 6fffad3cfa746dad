package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/apconnect/directory-api/pkg/errors"
	"github.com/apconnect/directory-api/pkg/validator"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// NewMessageResponse is a success response that only carries a message.
func NewMessageResponse(message string) *Response {
	return &Response{
		Status:  "success",
		Message: message,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes err as a JSON error body. Only AppError messages reach the client;
// anything else becomes a generic 500. The error is attached to the context for logging.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Header("Cache-Control", "no-store")

	appErr, ok := apperrors.As(err)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
		return
	}
	c.AbortWithStatusJSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}

// BindError reports a request binding failure as a 400.
func BindError(c *gin.Context, err error) {
	RespondError(c, apperrors.BadRequest(validator.Describe(err), err))
}
