package http

import (
	"buildhook/internal/gitrepo"
	"buildhook/pkg/log"
)

type handler struct {
	l  log.Logger
	uc gitrepo.UseCase
}

// New creates the HTTP handler for repository administration.
func New(l log.Logger, uc gitrepo.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
