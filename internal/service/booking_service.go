package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "gearshare/internal/errors"
	"gearshare/internal/model"
	"gearshare/internal/repository"
)

// BookingService handles rental bookings against gear listings.
type BookingService interface {
	Create(ctx context.Context, renterID, gearID uuid.UUID, start, end time.Time) (*model.Booking, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]model.Booking, error)
}

type bookingService struct {
	gearService GearService
	repo        repository.BookingRepository
	now         func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(gearService GearService, repo repository.BookingRepository) BookingService {
	return &bookingService{
		gearService: gearService,
		repo:        repo,
		now:         time.Now,
	}
}

// Create books the gear for [start, end). Inside the transaction the gear row
// is locked before the overlap check, so concurrent requests for the same gear
// serialize and cannot double-book.
func (s *bookingService) Create(ctx context.Context, renterID, gearID uuid.UUID, start, end time.Time) (*model.Booking, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if !start.Before(end) {
		return nil, apperrors.ErrInvalidBookingDates
	}
	if start.Before(truncateToDay(s.now())) {
		return nil, apperrors.ErrInvalidBookingDates
	}

	gear, err := s.gearService.GetByID(ctx, gearID)
	if err != nil {
		return nil, err
	}
	if gear.OwnerID == renterID {
		return nil, apperrors.ErrOwnGearBooking
	}

	nights := int64(end.Sub(start).Hours() / 24)
	total := gear.DailyPrice.Mul(decimal.NewFromInt(nights))

	booking := &model.Booking{
		GearID:     gearID,
		RenterID:   renterID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     model.BookingStatusPending,
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.BookingRepository) error {
		if err := repo.LockGear(ctx, gearID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGearNotFound
			}
			return fmt.Errorf("lock gear: %w", err)
		}
		overlapping, err := repo.CountOverlapping(ctx, gearID, start, end)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if overlapping > 0 {
			return apperrors.ErrBookingConflict
		}
		return repo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// ListByRenter returns the caller's bookings, newest first.
func (s *bookingService) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]model.Booking, error) {
	bookings, err := s.repo.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
