package middleware

import (
	"buildhook/pkg/log"
)

type Middleware struct {
	l           log.Logger
	adminAPIKey string
}

// New creates the middleware set. An empty adminAPIKey disables admin auth,
// which config validation forbids in production.
func New(l log.Logger, adminAPIKey string) Middleware {
	return Middleware{
		l:           l,
		adminAPIKey: adminAPIKey,
	}
}
