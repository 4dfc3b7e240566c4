package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gearshare/internal/auth"
	apperrors "gearshare/internal/errors"
	"gearshare/internal/model"
	"gearshare/internal/repository"
)

const bcryptCost = 10

// SignupInput carries validated signup fields. Birthday and PhoneNumber are
// optional; leaving them unset routes the user through profile completion.
type SignupInput struct {
	Email       string
	Password    string
	Name        string
	Birthday    *time.Time
	PhoneNumber *string
}

// TokenPair bundles the session tokens minted on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles signup, credential login, OAuth login, and the
// refresh/logout lifecycle.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error)
	OAuthLoginURL(state string) string
	HandleOAuthCallback(ctx context.Context, code string) (*TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo     repository.UserRepository
	identityRepo repository.IdentityRepository
	jwtService   *auth.JWTService
	tokenStore   auth.TokenStoreInterface
	oauth        auth.OAuthProvider
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	identityRepo repository.IdentityRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	oauth auth.OAuthProvider,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		oauth:        oauth,
	}
}

// Signup creates a new local-credential account. Duplicate email or phone
// fails with a conflict error and writes nothing.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	if input.PhoneNumber != nil {
		taken, err := s.userRepo.FindByPhoneNumber(ctx, *input.PhoneNumber)
		if err == nil && taken != nil {
			return nil, apperrors.ErrDuplicatePhone
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check phone uniqueness: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashedPassword)

	user := &model.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: &hash,
		Birthday:     input.Birthday,
		PhoneNumber:  input.PhoneNumber,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup may win the race past the pre-check; the unique
		// index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return user, nil
}

// Login verifies credentials and mints a session. The three failure modes are
// deliberately distinct: unknown email, OAuth-only account, wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrAccountNotFound
		}
		return nil, nil, fmt.Errorf("find account: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, nil, apperrors.ErrUnsupportedLoginMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// OAuthLoginURL returns the provider authorization URL for the given state.
func (s *authService) OAuthLoginURL(state string) string {
	return s.oauth.AuthURL(state)
}

// HandleOAuthCallback completes the OAuth handshake and mints a session.
// Unknown identities are linked to an existing account by email, or a new
// account is created without a password hash.
func (s *authService) HandleOAuthCallback(ctx context.Context, code string) (*TokenPair, *model.User, error) {
	info, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrOAuthExchange, err)
	}

	user, err := s.findOrCreateOAuthUser(ctx, info)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *authService) findOrCreateOAuthUser(ctx context.Context, info *auth.OAuthUserInfo) (*model.User, error) {
	identity, err := s.identityRepo.FindByProviderSubject(ctx, s.oauth.Name(), info.Subject)
	if err == nil && identity != nil {
		user, err := s.userRepo.FindByID(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("load account for identity: %w", err)
		}
		return user, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	// First login with this identity. Attach to an existing account with the
	// same email, otherwise create a fresh OAuth-only account.
	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find account by email: %w", err)
		}
		name := info.Name
		if name == "" {
			name = info.Email
		}
		user = &model.User{
			Email: info.Email,
			Name:  name,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create oauth account: %w", err)
		}
	}

	newIdentity := &model.Identity{
		UserID:   user.ID,
		Provider: s.oauth.Name(),
		Subject:  info.Subject,
	}
	if err := s.identityRepo.Create(ctx, newIdentity); err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	return user, nil
}

// Refresh validates a refresh token and mints a new access token. Claims are
// re-read from the database so a completed profile shows up on refresh.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
