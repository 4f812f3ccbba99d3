package http

import (
	"buildhook/internal/credential"
	"buildhook/pkg/log"
)

type handler struct {
	l  log.Logger
	uc credential.UseCase
}

func New(l log.Logger, uc credential.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
