package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"buildhook/internal/model"
	"buildhook/internal/webhook"
	"buildhook/pkg/response"
)

// GitHub godoc
// @Summary     GitHub webhook intake
// @Description Verifies X-Hub-Signature-256, stores the delivery and queues it for dispatch.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
// @Param       X-GitHub-Event      header string true "Event type"
// @Param       X-GitHub-Delivery   header string true "Delivery ID"
// @Param       X-Hub-Signature-256 header string true "sha256=<hex>"
// @Success     200 {object} intakeResp "Duplicate or ignored"
// @Success     202 {object} intakeResp "Accepted"
// @Failure     401 {object} response.Resp "Verification failed"
// @Failure     413 {object} response.Resp "Payload too large"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Router      /webhooks/github [POST]
func (h *handler) GitHub(c *gin.Context) {
	ctx := c.Request.Context()

	body, ok := h.admit(c, rateLimitKeyGitHub)
	if !ok {
		return
	}

	if err := h.uc.VerifyGitHub(ctx, c.GetHeader(headerGitHubSignature), body); err != nil {
		response.Unauthorized(c)
		return
	}

	out, err := h.uc.Ingest(ctx, webhook.IngestInput{
		Provider:   model.ProviderGitHub,
		DeliveryID: c.GetHeader(headerGitHubDelivery),
		EventType:  c.GetHeader(headerGitHubEvent),
		Payload:    body,
	})
	h.respondIngest(c, out, err)
}

// GitLab godoc
// @Summary     GitLab webhook intake
// @Description Checks X-Gitlab-Token against the target repository's stored digest, stores the delivery and queues it.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
// @Param       X-Gitlab-Event      header string true  "Event type"
// @Param       X-Gitlab-Token      header string true  "Shared webhook token"
// @Param       X-Gitlab-Event-UUID header string false "Delivery ID"
// @Param       Idempotency-Key     header string false "Delivery ID (preferred when present)"
// @Success     200 {object} intakeResp "Duplicate or ignored"
// @Success     202 {object} intakeResp "Accepted"
// @Failure     401 {object} response.Resp "Verification failed"
// @Failure     413 {object} response.Resp "Payload too large"
// @Failure     429 {object} response.Resp "Rate limit exceeded"
// @Router      /webhooks/gitlab [POST]
func (h *handler) GitLab(c *gin.Context) {
	ctx := c.Request.Context()

	body, ok := h.admit(c, rateLimitKeyGitLab)
	if !ok {
		return
	}

	target, err := h.uc.VerifyGitLab(ctx, c.GetHeader(headerGitLabToken), body)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	out, err := h.uc.Ingest(ctx, webhook.IngestInput{
		Provider:     model.ProviderGitLab,
		DeliveryID:   gitlabDeliveryID(c),
		EventType:    c.GetHeader(headerGitLabEvent),
		Payload:      body,
		RepositoryID: &target.ID,
	})
	h.respondIngest(c, out, err)
}

func (h *handler) respondIngest(c *gin.Context, out webhook.IngestOutput, err error) {
	switch {
	case errors.Is(err, webhook.ErrDuplicateDelivery):
		response.OK(c, intakeResp{Status: statusDuplicate})
	case err != nil:
		response.Error(c, h.mapError(err))
	case !out.Supported():
		response.OK(c, intakeResp{Status: statusIgnored, EventID: out.Event.ID})
	default:
		response.Accepted(c, intakeResp{Status: statusAccepted, EventID: out.Event.ID})
	}
}

// List godoc
// @Summary     List webhook events
// @Tags        Webhooks
// @Produce     json
// @Security    AdminKey
// @Param       provider      query string false "github or gitlab"
// @Param       repository_id query string false "Repository ID"
// @Param       processed     query bool   false "Filter by processed flag"
// @Param       limit         query int    false "Page size (default: 20)"
// @Param       offset        query int    false "Page offset"
// @Success     200 {object} listResp
// @Router      /api/v1/webhook-events [GET]
func (h *handler) List(c *gin.Context) {
	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.List(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, h.newListResp(out))
}

// Detail godoc
// @Summary     Get webhook event
// @Description Includes the raw payload.
// @Tags        Webhooks
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Event ID"
// @Success     200 {object} eventResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/webhook-events/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ev, err := h.uc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, newEventResp(ev))
}
