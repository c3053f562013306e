package models

import "time"

// User represents an account entity used for authentication and note
// ownership. It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique, case-sensitive login identifier. For accounts
	// created through the OAuth flow it is the verified e-mail address.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Accounts created via OAuth carry a hash of a random placeholder
	// value that can never be presented on the password login path.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity is the resolved result of session authentication: the pair of
// user attributes every downstream authorization decision is made against.
type Identity struct {
	UserID   int64  `json:"-"`
	Username string `json:"username"`
}
