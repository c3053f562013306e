package http

import "errors"

var (
	// ErrOAuthStateMismatch is returned when the state parameter of the
	// OAuth callback does not match the value issued at the start of the
	// handshake, which indicates a forged or stale callback.
	ErrOAuthStateMismatch = errors.New("oauth state parameter mismatch")
)
