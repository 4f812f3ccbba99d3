package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"buildhook/pkg/response"
)

const (
	headerGitHubEvent     = "X-GitHub-Event"
	headerGitHubDelivery  = "X-GitHub-Delivery"
	headerGitHubSignature = "X-Hub-Signature-256"
	headerGitLabEvent     = "X-Gitlab-Event"
	headerGitLabToken     = "X-Gitlab-Token"
	headerGitLabEventUUID = "X-Gitlab-Event-UUID"
	headerIdempotencyKey  = "Idempotency-Key"
	rateLimitKeyGitHub    = "github"
	rateLimitKeyGitLab    = "gitlab"
	statusAccepted        = "accepted"
	statusDuplicate       = "duplicate"
	statusIgnored         = "ignored"
)

// admit applies the allow-list, rate limit and size ceiling, then returns the
// raw body. It writes the response itself when the request is refused.
func (h *handler) admit(c *gin.Context, rateKey string) ([]byte, bool) {
	if !h.guard.AllowIP(c.ClientIP()) {
		h.l.Warnf(c.Request.Context(), "internal.webhook.delivery.http: %s refused for %s", rateKey, c.ClientIP())
		response.Forbidden(c)
		return nil, false
	}
	if !h.guard.Allow(rateKey) {
		h.l.Warnf(c.Request.Context(), "internal.webhook.delivery.http: %s rate limit exceeded", rateKey)
		response.TooManyRequests(c)
		return nil, false
	}

	if h.maxPayloadBytes > 0 && c.Request.ContentLength > h.maxPayloadBytes {
		response.TooLarge(c)
		return nil, false
	}
	reader := c.Request.Body
	if h.maxPayloadBytes > 0 {
		reader = io.NopCloser(io.LimitReader(c.Request.Body, h.maxPayloadBytes+1))
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if h.maxPayloadBytes > 0 && int64(len(body)) > h.maxPayloadBytes {
		response.TooLarge(c)
		return nil, false
	}
	return body, true
}

func gitlabDeliveryID(c *gin.Context) string {
	if key := c.GetHeader(headerIdempotencyKey); key != "" {
		return key
	}
	return c.GetHeader(headerGitLabEventUUID)
}

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}
