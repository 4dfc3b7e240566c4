package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gearshare/internal/cache"
	apperrors "gearshare/internal/errors"
	"gearshare/internal/model"
	"gearshare/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// PublicProfile is the subset of a user visible to anyone. Contact and
// birthday fields stay private.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate carries optional profile mutations; nil fields are untouched.
type ProfileUpdate struct {
	Name        *string
	Birthday    *time.Time
	PhoneNumber *string
}

// UserService exposes profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetPublicProfile(ctx context.Context, id uuid.UUID) (*PublicProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error)
	// ProfileComplete re-queries the user row; used by the completion gate
	// when session claims are missing the profile fields.
	ProfileComplete(ctx context.Context, id uuid.UUID) (bool, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

// GetUser retrieves the full user row.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetPublicProfile retrieves the public profile fields with caching.
func (s *userService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*PublicProfile, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached PublicProfile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &PublicProfile{
		ID:        user.ID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}

	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}

	return profile, nil
}

// UpdateProfile applies the non-nil fields and persists the user. Outstanding
// session tokens keep their issuance-time claims; callers needing fresh claims
// refresh their token.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.PhoneNumber != nil {
		taken, err := s.repo.FindByPhoneNumber(ctx, *update.PhoneNumber)
		if err == nil && taken != nil && taken.ID != id {
			return nil, apperrors.ErrDuplicatePhone
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check phone uniqueness: %w", err)
		}
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Birthday != nil {
		user.Birthday = update.Birthday
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicatePhone
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return user, nil
}

// ProfileComplete reports whether the stored profile has birthday and phone.
func (s *userService) ProfileComplete(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return false, err
	}
	return user.ProfileComplete(), nil
}
