package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gearshare/internal/auth"
	"gearshare/internal/errors"
	"gearshare/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// MeResponse represents the caller's session claims plus profile completeness.
type MeResponse struct {
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Birthday        string `json:"birthday,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	ProfileComplete bool   `json:"profile_complete"`
}

// UpdateProfileRequest carries optional profile updates.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Birthday    *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,e164"`
}

// Me godoc
// @Summary Current session claims and profile completeness
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	complete := claims.ProfileComplete()
	if !complete {
		// Claims are fixed at issuance; a profile completed since then is
		// only visible by re-querying.
		if fresh, err := h.userService.ProfileComplete(c.Request().Context(), claims.UserID); err == nil {
			complete = fresh
		}
	}

	return c.JSON(http.StatusOK, MeResponse{
		UserID:          claims.UserID.String(),
		Email:           claims.Email,
		Name:            claims.Name,
		Birthday:        claims.Birthday,
		PhoneNumber:     claims.PhoneNumber,
		ProfileComplete: complete,
	})
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	update := service.ProfileUpdate{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse(auth.BirthdayLayout, *req.Birthday)
		if err != nil {
			return validationError(err)
		}
		update.Birthday = &birthday
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.UserID, update)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// GetProfile godoc
// @Summary Public profile of a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} service.PublicProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_UUID",
		})
	}

	profile, err := h.userService.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, profile)
}
