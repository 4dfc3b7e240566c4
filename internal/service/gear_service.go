package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gearshare/internal/cache"
	apperrors "gearshare/internal/errors"
	"gearshare/internal/model"
	"gearshare/internal/repository"
)

const (
	gearCacheTTL     = 5 * time.Minute
	gearListCacheKey = "gear:all"
)

// GearInput carries validated listing fields.
type GearInput struct {
	Name        string
	Description string
	DailyPrice  decimal.Decimal
	Location    string
}

// GearService handles listing operations.
type GearService interface {
	GetAll(ctx context.Context, query string) ([]model.Gear, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Gear, error)
	Create(ctx context.Context, ownerID uuid.UUID, input GearInput) (*model.Gear, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Gear, error)
}

type gearService struct {
	repo  repository.GearRepository
	cache *cache.Client
}

// NewGearService creates a new gear service.
func NewGearService(repo repository.GearRepository, cache *cache.Client) GearService {
	return &gearService{repo: repo, cache: cache}
}

func (s *gearService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("gear:%s", id.String())
}

// GetAll returns listings, optionally filtered by a name substring. Only the
// unfiltered listing page is cached.
func (s *gearService) GetAll(ctx context.Context, query string) ([]model.Gear, error) {
	if query == "" {
		if data, _ := s.cache.Get(ctx, gearListCacheKey); data != nil {
			var cached []model.Gear
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	gear, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gear: %w", err)
	}

	if query == "" {
		if payload, err := json.Marshal(gear); err == nil {
			_ = s.cache.Set(ctx, gearListCacheKey, payload, gearCacheTTL)
		}
	}

	return gear, nil
}

// GetByID retrieves a listing by ID with caching.
func (s *gearService) GetByID(ctx context.Context, id uuid.UUID) (*model.Gear, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Gear
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	gear, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGearNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(gear); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, gearCacheTTL)
	}

	return gear, nil
}

// Create persists a new listing for the owner and invalidates the list cache.
func (s *gearService) Create(ctx context.Context, ownerID uuid.UUID, input GearInput) (*model.Gear, error) {
	gear := &model.Gear{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		DailyPrice:  input.DailyPrice,
		Location:    input.Location,
	}

	if err := s.repo.Create(ctx, gear); err != nil {
		return nil, fmt.Errorf("create gear: %w", err)
	}

	_ = s.cache.Delete(ctx, gearListCacheKey)

	return gear, nil
}

// ListByOwner returns the owner's listings.
func (s *gearService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Gear, error) {
	gear, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list gear by owner: %w", err)
	}
	return gear, nil
}
