package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidOAuthConfigs indicates a partially configured OAuth client:
	// some of client id, client secret, and redirect base URL are set while
	// others are missing.
	ErrInvalidOAuthConfigs = errors.New("invalid oauth configuration")
)
