package http

import (
	"github.com/avoseb/go-note-keeper/internal/adapter"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// identityProvider drives the Google OAuth handshake. May be nil when
	// OAuth is not configured; the /auth/google routes then answer 404.
	identityProvider adapter.IdentityProvider

	// sessionCookieName is the name of the HTTP-only cookie carrying the
	// session token.
	sessionCookieName string

	logger *logger.Logger
}

func NewHandler(services *service.Services, identityProvider adapter.IdentityProvider, sessionCookieName string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:          services,
		identityProvider:  identityProvider,
		sessionCookieName: sessionCookieName,
		logger:            logger,
	}
}
