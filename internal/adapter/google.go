package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/avoseb/go-note-keeper/internal/config"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Google's OAuth2 endpoints. Overridable in tests only.
const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// CallbackPath is the route Google redirects back to. Registered by
	// the HTTP handler and appended to the configured redirect base URL.
	CallbackPath = "/auth/google/callback"
)

// googleProvider is the resty-backed implementation of IdentityProvider.
type googleProvider struct {
	client *resty.Client

	clientID     string
	clientSecret string
	redirectURL  string

	authURL     string
	tokenURL    string
	userInfoURL string

	logger *logger.Logger
}

// NewGoogleProvider constructs an IdentityProvider from the OAuth
// configuration. It validates the client credentials and normalises the
// redirect base URL before deriving the callback address from it.
func NewGoogleProvider(cfg config.OAuth, logger *logger.Logger) (IdentityProvider, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("google oauth client credentials are not configured")
	}

	base, err := normalizeBaseURL(cfg.RedirectBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth redirect base url: %w", err)
	}

	client := resty.New().SetTimeout(cfg.RequestTimeout)

	return &googleProvider{
		client:       client,
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		redirectURL:  base + CallbackPath,
		authURL:      googleAuthURL,
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
		logger:       logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// AuthCodeURL implements [IdentityProvider]. It builds the consent screen
// URL the browser is redirected to.
func (g *googleProvider) AuthCodeURL(state string) string {
	query := url.Values{
		"client_id":     {g.clientID},
		"redirect_uri":  {g.redirectURL},
		"response_type": {"code"},
		"scope":         {"email profile"},
		"state":         {state},
	}

	return g.authURL + "?" + query.Encode()
}

// tokenResponse is the body of a successful code exchange.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// FetchProfile implements [IdentityProvider]. It exchanges the callback
// code for an access token, fetches the userinfo document with it, and
// rejects accounts whose email Google has not verified.
func (g *googleProvider) FetchProfile(ctx context.Context, code string) (GoogleProfile, error) {
	log := logger.FromContext(ctx)

	var token tokenResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     g.clientID,
			"client_secret": g.clientSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  g.redirectURL,
		}).
		SetResult(&token).
		Post(g.tokenURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("token exchange request: %w", err)
	}
	if resp.IsError() || token.AccessToken == "" {
		log.Error().
			Int("status", resp.StatusCode()).
			Msg("google rejected authorization code")
		return GoogleProfile{}, ErrExchangeRejected
	}

	var profile GoogleProfile
	resp, err = g.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get(g.userInfoURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("userinfo request: %w", err)
	}
	if resp.IsError() {
		return GoogleProfile{}, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode())
	}

	if !profile.VerifiedEmail {
		return GoogleProfile{}, ErrUnverifiedEmail
	}

	return profile, nil
}
