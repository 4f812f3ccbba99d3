package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildhook/internal/build"
	"buildhook/internal/gitrepo"
	"buildhook/internal/token"
	pkgErrors "buildhook/pkg/errors"
	"buildhook/pkg/response"
)

func (h *handler) mapError(err error) error {
	var cfgErr *token.ConfigError
	switch {
	case errors.Is(err, build.ErrBuildNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "build not found")
	case errors.Is(err, gitrepo.ErrRepositoryNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "repository not found")
	case errors.Is(err, build.ErrInvalidInput):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, build.ErrInvalidTransition):
		return pkgErrors.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, build.ErrBuildFinished):
		return pkgErrors.NewHTTPError(http.StatusConflict, "build already finished")
	case errors.Is(err, build.ErrRepositoryInactive):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "repository is inactive")
	case errors.As(err, &cfgErr):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, cfgErr.Error())
	case errors.Is(err, token.ErrGrantRevoked):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "gitlab grant revoked; reconnect the account")
	default:
		return pkgErrors.ErrInternalServerError
	}
}

func (h *handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, token.ErrProviderUnavailable) {
		response.ServiceUnavailable(c, "provider token endpoint unavailable, retry later")
		return
	}
	mapped := h.mapError(err)
	if mapped == pkgErrors.ErrInternalServerError {
		h.l.Errorf(c.Request.Context(), "internal.build.delivery.http: %v", err)
	}
	response.Error(c, mapped)
}
