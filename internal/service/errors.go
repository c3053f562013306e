package service

import "errors"

var (
	ErrBothCredentialsMissing = errors.New("no username and password provided")
	ErrUsernameMissing        = errors.New("no username provided")
	ErrPasswordMissing        = errors.New("no password provided")

	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrNoteNotFound covers every way a note can be unreachable: a
	// malformed id, a missing row, or a note owned by somebody else.
	// Callers never learn which of the three it was.
	ErrNoteNotFound = errors.New("note not found")

	ErrInvalidDataProvided = errors.New("invalid data provided")
)
