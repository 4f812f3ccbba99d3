package token

import (
	"time"

	"buildhook/internal/model"
)

// Token is a plaintext access token handed to a caller. It is never persisted in this form.
type Token struct {
	Provider  model.Provider
	Value     string
	ExpiresAt *time.Time
}
