package adapter

import "errors"

var (
	// ErrExchangeRejected means Google refused the authorization code:
	// expired, reused, or issued for a different client.
	ErrExchangeRejected = errors.New("authorization code rejected")

	// ErrUnverifiedEmail means the Google account's email is not verified,
	// so it cannot be trusted as an account identifier.
	ErrUnverifiedEmail = errors.New("google account email is not verified")
)
