package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/isluportal/internal/pkg/validation"
)

// APIResponse is the envelope for single-object endpoints
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// HandleValidationError turns a binding error into an error detail. Field
// errors are listed in Details keyed by field name.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validation.FieldMessage(fe)
		}
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
		if len(verrs) == 1 {
			detail = detail.WithField(verrs[0].Field())
		}
		return detail
	}

	return NewErrorDetail(ErrorCodeBadRequest, "Invalid request format").WithDetails(err.Error())
}
