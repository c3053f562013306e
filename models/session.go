package models

import "github.com/google/uuid"

// Session is a server-side record that maps an opaque bearer token to the
// owning user. The token value itself is the session identifier; it is
// issued at login, carried in an HTTP-only cookie, and destroyed at logout.
//
// Sessions carry no expiry: a row lives until the user logs out. This is a
// known limitation of the product, not an oversight of the implementation.
type Session struct {
	// SessionID is the opaque bearer token.
	SessionID uuid.UUID `json:"-"`

	// UserID identifies the owning user. A session whose user has since
	// disappeared is simply treated as invalid at lookup time.
	UserID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
