package github

import "errors"

var (
	ErrInvalidPrivateKey = errors.New("github: invalid app private key")
	// ErrRejected means GitHub answered but refused to mint (bad app id, removed installation).
	ErrRejected = errors.New("github: token request rejected")
	// ErrUnavailable covers transport failures and 5xx answers.
	ErrUnavailable = errors.New("github: api unavailable")
)
