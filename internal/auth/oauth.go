package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// OAuthUserInfo contains user information fetched from an OAuth provider.
type OAuthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

// OAuthProvider abstracts the OAuth handshake so the auth service can be
// tested without a live identity provider.
type OAuthProvider interface {
	// Name returns the provider identifier stored on identity rows.
	Name() string

	// AuthURL returns the provider authorization URL for the given state.
	AuthURL(state string) string

	// Exchange trades an authorization code for the provider's user info.
	Exchange(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// GoogleProvider implements OAuthProvider against Google's OAuth 2.0 endpoints.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// Ensure GoogleProvider implements OAuthProvider
var _ OAuthProvider = (*GoogleProvider)(nil)

// NewGoogleProvider creates a Google OAuth provider.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

// Configured reports whether client credentials are present.
func (p *GoogleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

// Name returns "google".
func (p *GoogleProvider) Name() string {
	return "google"
}

// AuthURL returns the Google authorization URL for the given state.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for a token and fetches user info.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*OAuthUserInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var data struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if data.Sub == "" || data.Email == "" {
		return nil, fmt.Errorf("userinfo response missing subject or email")
	}

	return &OAuthUserInfo{
		Subject: data.Sub,
		Email:   data.Email,
		Name:    data.Name,
	}, nil
}

// GenerateState returns a random URL-safe state parameter.
func GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
