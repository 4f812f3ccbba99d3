package token

import (
	"errors"
	"fmt"

	"buildhook/internal/model"
)

var (
	// ErrNotConfigured matches every *ConfigError via errors.Is.
	ErrNotConfigured = errors.New("provider credentials not configured")
	// ErrGrantRevoked means the stored refresh grant is dead; the account must be reconnected.
	ErrGrantRevoked = errors.New("provider refresh grant revoked")
	// ErrProviderUnavailable is retryable at a higher level (the next build attempt).
	ErrProviderUnavailable = errors.New("provider token endpoint unavailable")
	ErrCredentialCorrupt   = errors.New("stored credential could not be decrypted")
)

// ConfigError is returned when credentials should exist for a repository but
// are missing or unusable. Remediation names the step that fixes it.
type ConfigError struct {
	Provider    model.Provider
	Reason      string
	Remediation string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s credentials not configured: %s; %s", e.Provider, e.Reason, e.Remediation)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}
