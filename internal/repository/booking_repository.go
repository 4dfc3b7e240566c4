package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gearshare/internal/model"
)

// BookingRepository defines booking persistence operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]model.Booking, error)
	// LockGear takes a row lock on the gear inside the current transaction.
	// A plain snapshot read is not enough under REPEATABLE READ: two
	// concurrent transactions would both count zero overlaps and both insert.
	// Serializing on the gear row makes the count-then-insert safe.
	LockGear(ctx context.Context, gearID uuid.UUID) error
	CountOverlapping(ctx context.Context, gearID uuid.UUID, start, end time.Time) (int64, error)
	// WithTransaction runs fn inside a database transaction. Callers lock the
	// gear row first so the overlap check and the insert are serialized per
	// gear.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository builds a GORM-backed repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// LockGear reads the gear row with SELECT ... FOR UPDATE. Only meaningful
// inside WithTransaction; the lock is held until the transaction ends.
func (r *bookingRepository) LockGear(ctx context.Context, gearID uuid.UUID) error {
	var gear model.Gear
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", gearID).
		First(&gear).Error
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("start_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountOverlapping counts non-cancelled bookings for the gear whose date range
// intersects [start, end).
func (r *bookingRepository) CountOverlapping(ctx context.Context, gearID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("gear_id = ? AND status <> ?", gearID, model.BookingStatusCancelled).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *bookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
