package repository

import (
	"context"

	"gorm.io/gorm"

	"gearshare/internal/model"
)

// IdentityRepository defines OAuth identity persistence operations.
type IdentityRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	FindByProviderSubject(ctx context.Context, provider, subject string) (*model.Identity, error)
}

type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository builds a GORM-backed repository.
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, identity *model.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *identityRepository) FindByProviderSubject(ctx context.Context, provider, subject string) (*model.Identity, error) {
	var identity model.Identity
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND subject = ?", provider, subject).
		First(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}
