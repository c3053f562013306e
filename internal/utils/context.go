// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP
// response writing, and note identifier generation.
package utils

import (
	"context"

	"github.com/avoseb/go-note-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the session middleware stores the
// authenticated [models.Identity]. Requests from anonymous visitors carry
// no value under this key.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a child context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from the
// context.
//
// Returns the identity and an ok flag:
//   - ok == true  — the session middleware resolved a valid session
//   - ok == false — the request is anonymous
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}
