package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/pkg/response"
)

// Trigger godoc
// @Summary     Trigger a build
// @Description Creates a manual build. Fails with 422 when the repository's provider credentials are not configured.
// @Tags        Builds
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       body body triggerReq true "Build"
// @Success     200 {object} buildResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Repository not found"
// @Failure     422 {object} response.Resp "Credentials not configured"
// @Failure     503 {object} response.Resp "Provider unavailable"
// @Router      /api/v1/builds [POST]
func (h *handler) Trigger(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTriggerReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.uc.Trigger(ctx, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newBuildResp(b))
}

// List godoc
// @Summary     List builds
// @Tags        Builds
// @Produce     json
// @Security    AdminKey
// @Param       repository_id query string false "Repository ID"
// @Param       status        query string false "pending, running, success, failure or cancelled"
// @Param       limit         query int    false "Page size (default: 20)"
// @Param       offset        query int    false "Page offset"
// @Success     200 {object} listResp
// @Router      /api/v1/builds [GET]
func (h *handler) List(c *gin.Context) {
	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.List(c.Request.Context(), req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newListResp(out))
}

// Detail godoc
// @Summary     Get build
// @Tags        Builds
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Build ID"
// @Success     200 {object} buildResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/builds/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	b, err := h.uc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, newBuildResp(b))
}

// Cancel godoc
// @Summary     Cancel a build
// @Description Records the cancellation signal and returns without waiting for the executor to stop.
// @Description Cancelling a finished build is accepted and changes nothing.
// @Tags        Builds
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Build ID"
// @Success     202 {object} cancelResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/builds/{id}/cancel [POST]
func (h *handler) Cancel(c *gin.Context) {
	out, err := h.uc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Accepted(c, cancelResp{Build: newBuildResp(out.Build), Already: out.NoOp})
}

// UpdateStatus godoc
// @Summary     Report build status
// @Description Used by executors: pending -> running -> success|failure, or -> cancelled.
// @Tags        Builds
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       id   path string          true "Build ID"
// @Param       body body updateStatusReq true "Status"
// @Success     200 {object} buildResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Invalid transition"
// @Router      /api/v1/builds/{id}/status [PATCH]
func (h *handler) UpdateStatus(c *gin.Context) {
	req, err := h.processUpdateStatusReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.uc.UpdateStatus(c.Request.Context(), req.toInput(c.Param("id")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, newBuildResp(b))
}

// Credentials godoc
// @Summary     Issue repository credentials for a build
// @Description Returns a short-lived token the executor uses to fetch the build's repository.
// @Tags        Builds
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Build ID"
// @Success     200 {object} credentialsResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Build finished"
// @Failure     422 {object} response.Resp "Credentials not configured"
// @Failure     503 {object} response.Resp "Provider unavailable"
// @Router      /api/v1/builds/{id}/credentials [POST]
func (h *handler) Credentials(c *gin.Context) {
	tok, err := h.uc.Credentials(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, newCredentialsResp(tok))
}
