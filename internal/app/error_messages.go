// Package app contains shared application-layer constants used across the
// go-note-keeper server handlers and middleware.
//
// The AuthCode* constants are the numeric failure codes carried in the
// `?authError=true&code=N` redirect query after a failed login, signup, or
// OAuth callback. The numbering is part of the public contract with the
// frontend and must not be reordered.
package app

// Auth failure codes, surfaced to the landing page via redirect query.
const (
	// AuthCodeGeneric covers failures without a more specific code,
	// in particular any breakdown of the OAuth callback.
	AuthCodeGeneric = 0

	// AuthCodeUserNotFound: login attempt for an unknown username.
	AuthCodeUserNotFound = 2

	// AuthCodeWrongPassword: username exists, password does not match.
	AuthCodeWrongPassword = 3

	// AuthCodeBothFieldsEmpty: neither username nor password supplied.
	AuthCodeBothFieldsEmpty = 4

	// AuthCodeNoUsername: password supplied, username missing.
	AuthCodeNoUsername = 5

	// AuthCodeNoPassword: username supplied, password missing.
	AuthCodeNoPassword = 6

	// AuthCodeSignupFailed: signup rejected, typically a taken username.
	AuthCodeSignupFailed = 7
)

// AuthMessages maps auth failure codes to the human-readable message the
// landing page displays.
var AuthMessages = map[int]string{
	AuthCodeGeneric:         "authorization failed, please try again",
	AuthCodeUserNotFound:    "user not found",
	AuthCodeWrongPassword:   "wrong password",
	AuthCodeBothFieldsEmpty: "username and password are required",
	AuthCodeNoUsername:      "username is required",
	AuthCodeNoPassword:      "password is required",
	AuthCodeSignupFailed:    "could not sign up, username may be taken",
}

const (
	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgNotAuthorized is returned when a request reaches a protected
	// endpoint without a resolvable session.
	MsgNotAuthorized = "not authorized"

	// MsgNoteNotFound is the uniform rejection for note-scoped operations:
	// a missing note, a malformed identifier, and a note owned by someone
	// else all read the same from the outside.
	MsgNoteNotFound = "note not found"

	// MsgInvalidRequestBody is returned when the request body cannot be
	// decoded or fails basic validation (e.g. both updatable fields absent).
	MsgInvalidRequestBody = "invalid request body"

	// MsgNoteCreationFailed is returned when a note could not be stored.
	MsgNoteCreationFailed = "could not create note"
)
