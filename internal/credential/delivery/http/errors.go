package http

import (
	"errors"
	"net/http"

	"buildhook/internal/credential"
	pkgErrors "buildhook/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrInvalidInput):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, credential.ErrCredentialNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "credential not found")
	case errors.Is(err, credential.ErrNoActiveGitHubApp):
		return pkgErrors.NewHTTPError(http.StatusConflict, "configure a GitHub App first")
	case errors.Is(err, credential.ErrGitLabAppNotConfigured):
		return pkgErrors.NewHTTPError(http.StatusConflict, "configure the GitLab OAuth application for this instance first")
	case errors.Is(err, credential.ErrRepositoryMismatch):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "repository is not the GitLab project given")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
