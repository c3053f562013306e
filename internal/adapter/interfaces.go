// Package adapter holds clients for external services. The only one today
// is the Google OAuth2 identity provider used by the /auth/google flow.
package adapter

import "context"

// GoogleProfile is the subset of Google's userinfo response the
// application cares about.
type GoogleProfile struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// IdentityProvider is the contract of the OAuth2 handshake: build the
// consent URL, then trade the callback code for the user's profile.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (GoogleProfile, error)
}
