package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gearshare/internal/auth"
	"gearshare/internal/errors"
)

// sessionClaims extracts the session claims stored by the JWT middleware.
// Fails with 401 if the token is absent or has the wrong shape.
func sessionClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "not authenticated",
			Code:  "NOT_AUTHENTICATED",
		})
	}
	return claims, nil
}

// domainError maps a service error onto the HTTP taxonomy.
func domainError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// validationError maps a validator result onto a field-level response.
func validationError(err error) error {
	httpErr := errors.NewValidationError(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
