package gitlab

import "errors"

var (
	// ErrGrantRevoked means the refresh token is no longer valid and the user must reconnect.
	ErrGrantRevoked = errors.New("gitlab: refresh grant revoked or invalid")
	// ErrUnavailable covers transport failures and 5xx answers.
	ErrUnavailable = errors.New("gitlab: token endpoint unavailable")
)
