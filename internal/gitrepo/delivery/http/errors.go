package http

import (
	"errors"
	"net/http"

	"buildhook/internal/gitrepo"
	pkgErrors "buildhook/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, gitrepo.ErrRepositoryNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "repository not found")
	case errors.Is(err, gitrepo.ErrDuplicateRepository):
		return pkgErrors.NewHTTPError(http.StatusConflict, "repository already registered")
	case errors.Is(err, gitrepo.ErrInvalidInput), errors.Is(err, gitrepo.ErrWebhookSecretTooWeak):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
