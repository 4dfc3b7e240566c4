package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gearshare/internal/auth"
	apperrors "gearshare/internal/errors"
	"gearshare/internal/model"
)

func newTestAuthService(userRepo *MockUserRepository, identityRepo *MockIdentityRepository, tokenStore *MockTokenStore, oauth *MockOAuthProvider) AuthService {
	return NewAuthService(userRepo, identityRepo, auth.NewJWTService("test-secret"), tokenStore, oauth)
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	hash := string(hashed)
	return &hash
}

func TestAuthService_Signup(t *testing.T) {
	phone := "+46701112233"

	tests := []struct {
		name          string
		input         SignupInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful signup",
			input: SignupInput{Email: "a@b.com", Password: "Abcdefg1!", Name: "Ann"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "duplicate email",
			input: SignupInput{Email: "a@b.com", Password: "Abcdefg1!", Name: "Ann"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{Email: "a@b.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name:  "duplicate phone",
			input: SignupInput{Email: "new@b.com", Password: "Abcdefg1!", Name: "Ann", PhoneNumber: &phone},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPhoneNumber", mock.Anything, phone).Return(&model.User{}, nil)
			},
			expectedError: apperrors.ErrDuplicatePhone,
		},
		{
			name:  "concurrent signup loses race on unique index",
			input: SignupInput{Email: "race@b.com", Password: "Abcdefg1!", Name: "Ann"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := newTestAuthService(userRepo, new(MockIdentityRepository), new(MockTokenStore), new(MockOAuthProvider))
			user, err := svc.Signup(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Name, user.Name)
				assert.NotNil(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, *user.PasswordHash)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*testing.T, *MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@b.com",
			password: "Abcdefg1!",
			setupMock: func(t *testing.T, m *MockUserRepository, ts *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID:           userID,
					Email:        "a@b.com",
					Name:         "Ann",
					PasswordHash: hashOf(t, "Abcdefg1!"),
				}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), userID, "a@b.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unregistered email",
			email:    "x@y.com",
			password: "whatever1",
			setupMock: func(t *testing.T, m *MockUserRepository, ts *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "x@y.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAccountNotFound,
		},
		{
			name:     "oauth-only account",
			email:    "oauth@b.com",
			password: "whatever1",
			setupMock: func(t *testing.T, m *MockUserRepository, ts *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "oauth@b.com").Return(&model.User{
					ID:    uuid.New(),
					Email: "oauth@b.com",
				}, nil)
			},
			expectedError: apperrors.ErrUnsupportedLoginMethod,
		},
		{
			name:     "wrong password",
			email:    "a@b.com",
			password: "not-the-password",
			setupMock: func(t *testing.T, m *MockUserRepository, ts *MockTokenStore) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID:           userID,
					Email:        "a@b.com",
					PasswordHash: hashOf(t, "Abcdefg1!"),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenStore := new(MockTokenStore)
			tt.setupMock(t, userRepo, tokenStore)

			svc := newTestAuthService(userRepo, new(MockIdentityRepository), tokenStore, new(MockOAuthProvider))
			tokens, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tokens)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
				assert.Equal(t, tt.email, user.Email)
			}
			userRepo.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_HandleOAuthCallback_ExistingIdentity(t *testing.T) {
	userID := uuid.New()
	userRepo := new(MockUserRepository)
	identityRepo := new(MockIdentityRepository)
	tokenStore := new(MockTokenStore)
	oauth := new(MockOAuthProvider)

	oauth.On("Exchange", mock.Anything, "code-123").Return(&auth.OAuthUserInfo{
		Subject: "google-sub-1",
		Email:   "ann@gmail.com",
		Name:    "Ann",
	}, nil)
	identityRepo.On("FindByProviderSubject", mock.Anything, "google", "google-sub-1").Return(&model.Identity{
		UserID: userID,
	}, nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:    userID,
		Email: "ann@gmail.com",
		Name:  "Ann",
	}, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), userID, "ann@gmail.com", auth.RefreshTokenExpiry).Return(nil)

	svc := newTestAuthService(userRepo, identityRepo, tokenStore, oauth)
	tokens, user, err := svc.HandleOAuthCallback(context.Background(), "code-123")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, userID, user.ID)
	userRepo.AssertExpectations(t)
	identityRepo.AssertExpectations(t)
}

func TestAuthService_HandleOAuthCallback_NewUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	identityRepo := new(MockIdentityRepository)
	tokenStore := new(MockTokenStore)
	oauth := new(MockOAuthProvider)

	oauth.On("Exchange", mock.Anything, "code-456").Return(&auth.OAuthUserInfo{
		Subject: "google-sub-2",
		Email:   "new@gmail.com",
		Name:    "Newcomer",
	}, nil)
	identityRepo.On("FindByProviderSubject", mock.Anything, "google", "google-sub-2").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "new@gmail.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	identityRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Identity")).Return(nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "new@gmail.com", auth.RefreshTokenExpiry).Return(nil)

	svc := newTestAuthService(userRepo, identityRepo, tokenStore, oauth)
	tokens, user, err := svc.HandleOAuthCallback(context.Background(), "code-456")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "new@gmail.com", user.Email)
	// OAuth-only accounts never hold a password hash
	assert.Nil(t, user.PasswordHash)
	userRepo.AssertExpectations(t)
	identityRepo.AssertExpectations(t)
}

func TestAuthService_HandleOAuthCallback_ExchangeRejected(t *testing.T) {
	oauth := new(MockOAuthProvider)
	oauth.On("Exchange", mock.Anything, "bad-code").Return(nil, assert.AnError)

	svc := newTestAuthService(new(MockUserRepository), new(MockIdentityRepository), new(MockTokenStore), oauth)
	_, _, err := svc.HandleOAuthCallback(context.Background(), "bad-code")

	assert.ErrorIs(t, err, apperrors.ErrOAuthExchange)
}

func TestAuthService_Refresh(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{ID: userID, Email: "a@b.com", Name: "Ann"}

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	t.Run("successful refresh re-reads the profile", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)

		birthday := time.Date(1991, 4, 12, 0, 0, 0, 0, time.UTC)
		phone := "+46701234567"
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "a@b.com", nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:          userID,
			Email:       "a@b.com",
			Name:        "Ann",
			Birthday:    &birthday,
			PhoneNumber: &phone,
		}, nil)

		svc := NewAuthService(userRepo, new(MockIdentityRepository), jwtService, tokenStore, new(MockOAuthProvider))
		accessToken, err := svc.Refresh(context.Background(), refreshToken)

		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		// Profile completed after the refresh token was minted shows up now
		assert.Equal(t, "1991-04-12", claims.Birthday)
		assert.Equal(t, phone, claims.PhoneNumber)
		assert.True(t, claims.ProfileComplete())
	})

	t.Run("unknown token id", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, "", assert.AnError)

		svc := NewAuthService(userRepo, new(MockIdentityRepository), jwtService, tokenStore, new(MockOAuthProvider))
		_, err := svc.Refresh(context.Background(), refreshToken)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), new(MockIdentityRepository), jwtService, new(MockTokenStore), new(MockOAuthProvider))
		_, err := svc.Refresh(context.Background(), "not-a-token")

		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{ID: uuid.New(), Email: "a@b.com"}
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	tokenStore := new(MockTokenStore)
	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(new(MockUserRepository), new(MockIdentityRepository), jwtService, tokenStore, new(MockOAuthProvider))
	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	tokenStore.AssertExpectations(t)
}
