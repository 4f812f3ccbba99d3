package http

import (
	"errors"
	"net/http"

	"buildhook/internal/webhook"
	pkgErrors "buildhook/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, webhook.ErrEventNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "webhook event not found")
	case errors.Is(err, webhook.ErrPayloadTooLarge):
		return pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "payload too large")
	case errors.Is(err, webhook.ErrMalformedPayload):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "malformed payload")
	case errors.Is(err, webhook.ErrVerificationFailed):
		return pkgErrors.ErrUnauthorized
	default:
		return pkgErrors.ErrInternalServerError
	}
}
