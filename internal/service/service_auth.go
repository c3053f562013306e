package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/store"
	"github.com/avoseb/go-note-keeper/internal/utils"
	"github.com/avoseb/go-note-keeper/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor applied to every stored password.
const passwordHashCost = 10

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification and the
// server-side session lifecycle. Sessions are opaque random tokens kept
// in the database, so logging out revokes them immediately.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository stores the opaque session tokens handed out at login.
	sessionRepository store.SessionRepository

	// noteRepository is only used to seed the starter note for fresh accounts.
	noteRepository store.NoteRepository

	// noteIDs mints the id of the starter note.
	noteIDs *utils.NoteIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, sessions store.SessionRepository, notes store.NoteRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		noteRepository:    notes,
		noteIDs:           utils.NewNoteIDGenerator(),
		logger:            logger,
	}
}

// SignUp creates a new account.
//
// It validates that both credentials are present, hashes the password with
// bcrypt and delegates persistence to the UserRepository. Every fresh
// account is seeded with a short starter note so the dashboard is never
// empty on first login.
//
// Returns the identity of the new account or:
//   - ErrBothCredentialsMissing / ErrUsernameMissing / ErrPasswordMissing
//     if a credential is empty.
//   - ErrUsernameTaken if the username is already registered.
func (a *authService) SignUp(ctx context.Context, username, password string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(username, password); err != nil {
		log.Error().Str("username", username).Msg("invalid signup data provided")
		return models.Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Identity{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return models.Identity{}, ErrUsernameTaken
		}

		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.Identity{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.seedStarterNote(ctx, user.UserID)

	return models.Identity{UserID: user.UserID, Username: user.Username}, nil
}

// Login authenticates an existing account.
//
// Returns the identity on success or:
//   - ErrBothCredentialsMissing / ErrUsernameMissing / ErrPasswordMissing
//     if a credential is empty.
//   - ErrUserNotFound if no account exists under the username.
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, username, password string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(username, password); err != nil {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.Identity{}, err
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Identity{}, ErrUserNotFound
		}

		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.Identity{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Error().
			Int64("id", user.UserID).
			Str("username", user.Username).
			Msg("wrong password")
		return models.Identity{}, ErrWrongPassword
	}

	return models.Identity{UserID: user.UserID, Username: user.Username}, nil
}

// LoginWithGoogle signs in the account registered under the verified Google
// email, creating it on first login. The created account gets a random
// unguessable password so it stays reachable through OAuth only.
func (a *authService) LoginWithGoogle(ctx context.Context, email string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("empty email received from identity provider")
		return models.Identity{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByUsername(ctx, email)
	if err == nil {
		return models.Identity{UserID: user.UserID, Username: user.Username}, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("username", email).Msg("user search by username failed")
		return models.Identity{}, fmt.Errorf("user search by username failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), passwordHashCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Identity{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err = a.userRepository.CreateUser(ctx, models.User{
		Username:     email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// lost the race against a concurrent first login for the same email
		if errors.Is(err, store.ErrUsernameTaken) {
			user, err = a.userRepository.FindUserByUsername(ctx, email)
			if err == nil {
				return models.Identity{UserID: user.UserID, Username: user.Username}, nil
			}
		}

		log.Err(err).Str("username", email).Msg("google user creation ended with error")
		return models.Identity{}, fmt.Errorf("google user creation ended with error: %w", err)
	}

	a.seedStarterNote(ctx, user.UserID)

	return models.Identity{UserID: user.UserID, Username: user.Username}, nil
}

// CreateSession issues a fresh session token for the user.
func (a *authService) CreateSession(ctx context.Context, userID int64) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	session, err := a.sessionRepository.CreateSession(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session creation ended with error")
		return uuid.Nil, fmt.Errorf("session creation ended with error: %w", err)
	}

	return session.SessionID, nil
}

// ResolveSession maps a raw cookie value to the identity it belongs to.
//
// Resolution fails open: a malformed token, an unknown session or a
// vanished user all yield (zero identity, false) and the request proceeds
// anonymously. Unexpected storage errors are logged but treated the same
// way so a database hiccup never turns the public pages into errors.
func (a *authService) ResolveSession(ctx context.Context, token string) (models.Identity, bool) {
	log := logger.FromContext(ctx)

	sessionID, err := uuid.Parse(token)
	if err != nil {
		return models.Identity{}, false
	}

	session, err := a.sessionRepository.FindSession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Msg("session lookup failed")
		}
		return models.Identity{}, false
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Int64("user_id", session.UserID).Msg("session user lookup failed")
		}
		return models.Identity{}, false
	}

	return models.Identity{UserID: user.UserID, Username: user.Username}, true
}

// DeleteSession revokes the session named by the raw cookie value.
// Unknown or malformed tokens are not an error: logout is idempotent.
func (a *authService) DeleteSession(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	sessionID, err := uuid.Parse(token)
	if err != nil {
		return nil
	}

	if err := a.sessionRepository.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		log.Err(err).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}

// seedStarterNote creates the tutorial note for a fresh account.
// Best effort: a failure here must not fail the signup, so it is only logged.
func (a *authService) seedStarterNote(ctx context.Context, userID int64) {
	log := logger.FromContext(ctx)

	id, err := a.noteIDs.Generate()
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("starter note id generation failed")
		return
	}

	_, err = a.noteRepository.CreateNote(ctx, models.Note{
		ID:     id,
		UserID: userID,
		Title:  starterNoteTitle,
		Text:   starterNoteText,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("starter note creation failed")
	}
}

func validateCredentials(username, password string) error {
	switch {
	case username == "" && password == "":
		return ErrBothCredentialsMissing
	case username == "":
		return ErrUsernameMissing
	case password == "":
		return ErrPasswordMissing
	}

	return nil
}

const starterNoteTitle = "Welcome to Note Keeper"

const starterNoteText = `This starter note shows what notes can do.

## Markdown

Notes are written in markdown, so you can use **bold**, *italic* and
` + "`inline code`" + `.

- make lists
- [link things](https://www.markdownguide.org/basic-syntax/)
- quote people:

> The palest ink is better than the best memory.

## Housekeeping

Archive a note when you are done with it, restore it later, or delete
archived notes for good. Any note can be exported to PDF from its page.

Feel free to delete this note once you have found your way around.`
