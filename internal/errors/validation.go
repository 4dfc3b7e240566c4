package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidationError builds a field-level HTTP error from a validator result.
// Non-validator errors (malformed JSON and the like) collapse to a single
// INVALID_REQUEST error without a field list.
func NewValidationError(err error) *HTTPError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid request", "INVALID_REQUEST")
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}

	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Code:       "VALIDATION_FAILED",
		Fields:     fields,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "e164":
		return "must be a valid phone number in international format"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
