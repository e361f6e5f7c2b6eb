package types

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/uleam/dictado/pkg/errors"
)

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondError writes a typed application error with its mapped HTTP status.
// Untyped errors fall through as 500 INTERNAL.
func RespondError(c *gin.Context, err error) {
	c.JSON(apperrors.GetHTTPCode(err), ErrorResponse{
		Error: err.Error(),
		Code:  string(apperrors.GetCode(err)),
	})
}
