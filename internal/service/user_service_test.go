package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gearshare/internal/cache"
	apperrors "gearshare/internal/errors"
	"gearshare/internal/model"
)

func noCache() *cache.Client {
	var c *cache.Client
	return c
}

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	name := "Ann Updated"
	phone := "+46701234567"
	birthday := time.Date(1991, 4, 12, 0, 0, 0, 0, time.UTC)

	t.Run("updates provided fields only", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:    userID,
			Name:  "Ann",
			Email: "a@b.com",
		}, nil)
		repo.On("FindByPhoneNumber", mock.Anything, phone).Return(nil, gorm.ErrRecordNotFound)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(repo, noCache())
		user, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{
			Name:        &name,
			Birthday:    &birthday,
			PhoneNumber: &phone,
		})

		assert.NoError(t, err)
		assert.Equal(t, name, user.Name)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, birthday, *user.Birthday)
		assert.Equal(t, phone, *user.PhoneNumber)
		assert.True(t, user.ProfileComplete())
		repo.AssertExpectations(t)
	})

	t.Run("phone taken by another user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		repo.On("FindByPhoneNumber", mock.Anything, phone).Return(&model.User{ID: uuid.New()}, nil)

		svc := NewUserService(repo, noCache())
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{PhoneNumber: &phone})

		assert.ErrorIs(t, err, apperrors.ErrDuplicatePhone)
	})

	t.Run("re-submitting own phone is not a conflict", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		repo.On("FindByPhoneNumber", mock.Anything, phone).Return(&model.User{ID: userID, PhoneNumber: &phone}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(repo, noCache())
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{PhoneNumber: &phone})

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(repo, noCache())
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Name: &name})

		assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})
}

func TestUserService_GetPublicProfile(t *testing.T) {
	userID := uuid.New()
	phone := "+46701234567"
	birthday := time.Date(1991, 4, 12, 0, 0, 0, 0, time.UTC)

	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:          userID,
		Name:        "Ann",
		Email:       "a@b.com",
		Birthday:    &birthday,
		PhoneNumber: &phone,
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil)

	svc := NewUserService(repo, noCache())
	profile, err := svc.GetPublicProfile(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "Ann", profile.Name)
	// Public profile carries no contact or birthday fields by construction;
	// only id, name, and member-since survive.
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), profile.CreatedAt)
}

func TestUserService_ProfileComplete(t *testing.T) {
	userID := uuid.New()
	phone := "+46701234567"
	birthday := time.Date(1991, 4, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		user     *model.User
		expected bool
	}{
		{"both fields set", &model.User{ID: userID, Birthday: &birthday, PhoneNumber: &phone}, true},
		{"missing phone", &model.User{ID: userID, Birthday: &birthday}, false},
		{"missing birthday", &model.User{ID: userID, PhoneNumber: &phone}, false},
		{"missing both", &model.User{ID: userID}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("FindByID", mock.Anything, userID).Return(tt.user, nil)

			svc := NewUserService(repo, noCache())
			complete, err := svc.ProfileComplete(context.Background(), userID)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, complete)
		})
	}
}
