package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAccountNotFound is returned when no account exists for an email or id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUnsupportedLoginMethod is returned when a password login is attempted
	// against an OAuth-only account (no stored password hash).
	ErrUnsupportedLoginMethod = errors.New("unsupported login method")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicatePhone is returned when the phone number is already in use.
	ErrDuplicatePhone = errors.New("phone number already in use")
	// ErrProfileIncomplete is returned when a gated operation requires
	// birthday and phone number and the account lacks them.
	ErrProfileIncomplete = errors.New("profile incomplete")
	// ErrGearNotFound is returned when a listing is not found.
	ErrGearNotFound = errors.New("gear not found")
	// ErrBookingConflict is returned when the requested dates overlap an
	// existing booking for the same gear.
	ErrBookingConflict = errors.New("gear already booked for these dates")
	// ErrInvalidBookingDates is returned when the date range is malformed.
	ErrInvalidBookingDates = errors.New("invalid booking dates")
	// ErrOwnGearBooking is returned when an owner tries to book their own gear.
	ErrOwnGearBooking = errors.New("cannot book your own gear")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrOAuthExchange is returned when the provider rejects the authorization
	// code, typically because it is invalid, expired, or already used.
	ErrOAuthExchange = errors.New("authorization code exchange failed")
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response. Fields is populated
// only for validation failures.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrUnsupportedLoginMethod):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_LOGIN_METHOD")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrDuplicatePhone):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_PHONE")
	case errors.Is(err, ErrProfileIncomplete):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PROFILE_INCOMPLETE")
	case errors.Is(err, ErrGearNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GEAR_NOT_FOUND")
	case errors.Is(err, ErrBookingConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "BOOKING_CONFLICT")
	case errors.Is(err, ErrInvalidBookingDates):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_BOOKING_DATES")
	case errors.Is(err, ErrOwnGearBooking):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OWN_GEAR_BOOKING")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrOAuthExchange):
		return NewHTTPError(http.StatusBadRequest, ErrOAuthExchange.Error(), "OAUTH_EXCHANGE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
