package http

import (
	"buildhook/internal/webhook"
	"buildhook/pkg/log"
)

type handler struct {
	l               log.Logger
	uc              webhook.UseCase
	guard           *webhook.Guard
	maxPayloadBytes int64
}

// New creates the webhook intake and event query handler.
func New(l log.Logger, uc webhook.UseCase, guard *webhook.Guard, maxPayloadBytes int64) *handler {
	return &handler{
		l:               l,
		uc:              uc,
		guard:           guard,
		maxPayloadBytes: maxPayloadBytes,
	}
}
