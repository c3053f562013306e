package config

import "time"

// Fallbacks applied after all sources are merged. Only zero-valued fields
// are touched, so any explicit setting wins.
const (
	defaultHTTPAddress       = "localhost:3000"
	defaultSessionCookieName = "sessionId"
	defaultRequestTimeout    = 30 * time.Second
	defaultConnectAttempts   = 5
	defaultConnectBackoff    = 1500 * time.Millisecond
	defaultOAuthTimeout      = 15 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.SessionCookieName == "" {
		cfg.App.SessionCookieName = defaultSessionCookieName
	}
	if cfg.Storage.DB.ConnectAttempts == 0 {
		cfg.Storage.DB.ConnectAttempts = defaultConnectAttempts
	}
	if cfg.Storage.DB.ConnectBackoff == 0 {
		cfg.Storage.DB.ConnectBackoff = defaultConnectBackoff
	}
	if cfg.OAuth.RequestTimeout == 0 {
		cfg.OAuth.RequestTimeout = defaultOAuthTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	// OAuth settings are optional as a group: the password path works
	// without them. When partially configured the handshake cannot work,
	// so reject early.
	oauthSet := cfg.OAuth.GoogleClientID != "" || cfg.OAuth.GoogleClientSecret != "" || cfg.OAuth.RedirectBaseURL != ""
	oauthComplete := cfg.OAuth.GoogleClientID != "" && cfg.OAuth.GoogleClientSecret != "" && cfg.OAuth.RedirectBaseURL != ""
	if oauthSet && !oauthComplete {
		return ErrInvalidOAuthConfigs
	}

	return nil
}
