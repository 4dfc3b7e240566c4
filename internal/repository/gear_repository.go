package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gearshare/internal/model"
)

// GearRepository defines listing persistence operations.
type GearRepository interface {
	Create(ctx context.Context, gear *model.Gear) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gear, error)
	List(ctx context.Context, query string) ([]model.Gear, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Gear, error)
}

type gearRepository struct {
	db *gorm.DB
}

// NewGearRepository builds a GORM-backed repository.
func NewGearRepository(db *gorm.DB) GearRepository {
	return &gearRepository{db: db}
}

func (r *gearRepository) Create(ctx context.Context, gear *model.Gear) error {
	return r.db.WithContext(ctx).Create(gear).Error
}

func (r *gearRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Gear, error) {
	var gear model.Gear
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&gear).Error; err != nil {
		return nil, err
	}
	return &gear, nil
}

// List returns listings newest first, optionally filtered by a name substring.
func (r *gearRepository) List(ctx context.Context, query string) ([]model.Gear, error) {
	var gear []model.Gear
	tx := r.db.WithContext(ctx).Order("created_at DESC")
	if query != "" {
		tx = tx.Where("name LIKE ?", "%"+query+"%")
	}
	if err := tx.Find(&gear).Error; err != nil {
		return nil, err
	}
	return gear, nil
}

func (r *gearRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Gear, error) {
	var gear []model.Gear
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&gear).Error; err != nil {
		return nil, err
	}
	return gear, nil
}
