package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gearshare/internal/auth"
	"gearshare/internal/model"
	"gearshare/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhoneNumber(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockIdentityRepository is a mock implementation of repository.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *model.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) FindByProviderSubject(ctx context.Context, provider, subject string) (*model.Identity, error) {
	args := m.Called(ctx, provider, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

// MockGearRepository is a mock implementation of repository.GearRepository.
type MockGearRepository struct {
	mock.Mock
}

func (m *MockGearRepository) Create(ctx context.Context, gear *model.Gear) error {
	args := m.Called(ctx, gear)
	return args.Error(0)
}

func (m *MockGearRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Gear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gear), args.Error(1)
}

func (m *MockGearRepository) List(ctx context.Context, query string) ([]model.Gear, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Gear), args.Error(1)
}

func (m *MockGearRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Gear, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Gear), args.Error(1)
}

// MockBookingRepository is a mock implementation of repository.BookingRepository.
// WithTransaction runs the callback against the mock itself.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) LockGear(ctx context.Context, gearID uuid.UUID) error {
	args := m.Called(ctx, gearID)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]model.Booking, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, gearID uuid.UUID, start, end time.Time) (int64, error) {
	args := m.Called(ctx, gearID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.BookingRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockOAuthProvider is a mock implementation of auth.OAuthProvider.
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) Name() string {
	return "google"
}

func (m *MockOAuthProvider) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*auth.OAuthUserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.OAuthUserInfo), args.Error(1)
}

// MockGearService is a mock implementation of GearService.
type MockGearService struct {
	mock.Mock
}

func (m *MockGearService) GetAll(ctx context.Context, query string) ([]model.Gear, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Gear), args.Error(1)
}

func (m *MockGearService) GetByID(ctx context.Context, id uuid.UUID) (*model.Gear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gear), args.Error(1)
}

func (m *MockGearService) Create(ctx context.Context, ownerID uuid.UUID, input GearInput) (*model.Gear, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gear), args.Error(1)
}

func (m *MockGearService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Gear, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Gear), args.Error(1)
}
