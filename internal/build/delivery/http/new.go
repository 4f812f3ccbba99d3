package http

import (
	"buildhook/internal/build"
	"buildhook/pkg/log"
)

type handler struct {
	l  log.Logger
	uc build.UseCase
}

// New creates the HTTP handler for builds.
func New(l log.Logger, uc build.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
