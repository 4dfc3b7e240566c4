package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gearshare/internal/errors"
	"gearshare/internal/service"
)

const bookingDateLayout = "2006-01-02"

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest represents a booking request. EndDate is exclusive.
type CreateBookingRequest struct {
	GearID    string `json:"gear_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// CreateBooking godoc
// @Summary Book a listing for a date range
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking data"
// @Success 201 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	gearID, err := uuid.Parse(req.GearID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid gear ID",
			Code:  "INVALID_UUID",
		})
	}

	start, err := time.Parse(bookingDateLayout, req.StartDate)
	if err != nil {
		return validationError(err)
	}
	end, err := time.Parse(bookingDateLayout, req.EndDate)
	if err != nil {
		return validationError(err)
	}

	booking, err := h.bookingService.Create(c.Request().Context(), claims.UserID, gearID, start, end)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, booking)
}

// ListMyBookings godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.ListByRenter(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, bookings)
}
