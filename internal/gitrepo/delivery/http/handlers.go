package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/pkg/response"
)

// Register godoc
// @Summary     Register a repository
// @Description Registers a repository. The webhook secret is returned once and only its HMAC is stored.
// @Tags        Repositories
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       body body registerReq true "Repository"
// @Success     200 {object} secretResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conflict - already registered"
// @Router      /api/v1/repositories [POST]
func (h *handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRegisterReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.Register(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, secretResp{
		Repository:                  newRepositoryResp(out.Repository),
		WebhookSecret:               out.WebhookSecret,
		WebhookSecretVerifiesIntake: out.VerifiesIntake,
	})
}

// List godoc
// @Summary     List repositories
// @Tags        Repositories
// @Produce     json
// @Security    AdminKey
// @Param       provider    query string false "github or gitlab"
// @Param       active_only query bool   false "Only active repositories"
// @Param       limit       query int    false "Page size (default: 20)"
// @Param       offset      query int    false "Page offset"
// @Success     200 {object} listResp
// @Router      /api/v1/repositories [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(out))
}

// Detail godoc
// @Summary     Get repository
// @Tags        Repositories
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Repository ID"
// @Success     200 {object} repositoryResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/repositories/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	rec, err := h.uc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, newRepositoryResp(rec))
}

// RotateSecret godoc
// @Summary     Rotate webhook secret
// @Description Generates a new webhook secret. The previous one stops verifying immediately.
// @Tags        Repositories
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Repository ID"
// @Success     200 {object} secretResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/repositories/{id}/rotate-secret [POST]
func (h *handler) RotateSecret(c *gin.Context) {
	out, err := h.uc.RotateSecret(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, secretResp{
		Repository:                  newRepositoryResp(out.Repository),
		WebhookSecret:               out.WebhookSecret,
		WebhookSecretVerifiesIntake: out.VerifiesIntake,
	})
}

// Deactivate godoc
// @Summary     Deactivate repository
// @Tags        Repositories
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Repository ID"
// @Success     200 {object} repositoryResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/repositories/{id}/deactivate [POST]
func (h *handler) Deactivate(c *gin.Context) {
	rec, err := h.uc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, newRepositoryResp(rec))
}
