package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gearshare/internal/errors"
	"gearshare/internal/service"
)

// GearHandler handles listing endpoints.
type GearHandler struct {
	gearService service.GearService
}

// NewGearHandler creates a new gear handler.
func NewGearHandler(gearService service.GearService) *GearHandler {
	return &GearHandler{gearService: gearService}
}

// CreateGearRequest represents a new listing.
type CreateGearRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=5000"`
	DailyPrice  string `json:"daily_price" validate:"required"`
	Location    string `json:"location,omitempty" validate:"max=255"`
}

// ListGear godoc
// @Summary List gear, optionally filtered by name
// @Tags gear
// @Produce json
// @Param q query string false "Name filter"
// @Success 200 {array} model.Gear
// @Failure 500 {object} errors.ErrorResponse
// @Router /gear [get]
func (h *GearHandler) ListGear(c echo.Context) error {
	gear, err := h.gearService.GetAll(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, gear)
}

// GetGear godoc
// @Summary Get a listing by id
// @Tags gear
// @Produce json
// @Param id path string true "Gear ID"
// @Success 200 {object} model.Gear
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /gear/{id} [get]
func (h *GearHandler) GetGear(c echo.Context) error {
	gearID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid gear ID",
			Code:  "INVALID_UUID",
		})
	}

	gear, err := h.gearService.GetByID(c.Request().Context(), gearID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, gear)
}

// CreateGear godoc
// @Summary Post a new listing
// @Tags gear
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGearRequest true "Listing data"
// @Success 201 {object} model.Gear
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /gear [post]
func (h *GearHandler) CreateGear(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req CreateGearRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	price, err := decimal.NewFromString(req.DailyPrice)
	if err != nil || price.IsNegative() || price.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "validation failed",
			Code:  "VALIDATION_FAILED",
			Fields: []errors.FieldError{
				{Field: "daily_price", Message: "must be a positive decimal amount"},
			},
		})
	}

	gear, err := h.gearService.Create(c.Request().Context(), claims.UserID, service.GearInput{
		Name:        req.Name,
		Description: req.Description,
		DailyPrice:  price,
		Location:    req.Location,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, gear)
}

// ListMyGear godoc
// @Summary List the caller's listings
// @Tags gear
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Gear
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/gear [get]
func (h *GearHandler) ListMyGear(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	gear, err := h.gearService.ListByOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, gear)
}
