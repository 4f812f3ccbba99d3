package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/internal/credential"
	"buildhook/pkg/response"
)

// SetGitHubApp godoc
// @Summary     Set the active GitHub App
// @Description Stores the App private key (encrypted) and makes this App the only active one.
// @Tags        Credentials
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       body body setGitHubAppReq true "GitHub App"
// @Success     200 {object} githubAppResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/credentials/github-app [PUT]
func (h *handler) SetGitHubApp(c *gin.Context) {
	var req setGitHubAppReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	app, err := h.uc.SetGitHubApp(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, newGitHubAppResp(app))
}

// AddInstallation godoc
// @Summary     Record a GitHub App installation
// @Tags        Credentials
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       body body addInstallationReq true "Installation"
// @Success     200 {object} installationResp
// @Failure     409 {object} response.Resp "No active GitHub App"
// @Router      /api/v1/credentials/github-app/installations [POST]
func (h *handler) AddInstallation(c *gin.Context) {
	var req addInstallationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	inst, err := h.uc.AddInstallation(c.Request.Context(), credential.AddInstallationInput{
		InstallationID: req.InstallationID,
		AccountLogin:   req.AccountLogin,
	})
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, newInstallationResp(inst))
}

// ListInstallations godoc
// @Summary     List GitHub App installations
// @Tags        Credentials
// @Produce     json
// @Security    AdminKey
// @Success     200 {array} installationResp
// @Router      /api/v1/credentials/github-app/installations [GET]
func (h *handler) ListInstallations(c *gin.Context) {
	list, err := h.uc.ListInstallations(c.Request.Context())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	out := make([]installationResp, len(list))
	for i, inst := range list {
		out[i] = newInstallationResp(inst)
	}
	response.OK(c, out)
}

// SetGitLabApp godoc
// @Summary     Set the GitLab OAuth application for an instance
// @Tags        Credentials
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       body body setGitLabAppReq true "OAuth application"
// @Success     200 {object} gitlabAppResp
// @Router      /api/v1/credentials/gitlab-app [PUT]
func (h *handler) SetGitLabApp(c *gin.Context) {
	var req setGitLabAppReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	app, err := h.uc.SetGitLabApp(c.Request.Context(), credential.SetGitLabAppInput{
		InstanceURL:  req.InstanceURL,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
	})
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, gitlabAppResp{ID: app.ID, InstanceURL: app.InstanceURL, ClientID: app.ClientID})
}

// ConnectGitLab godoc
// @Summary     Connect a GitLab account
// @Description Stores the account's OAuth tokens encrypted at rest.
// @Tags        Credentials
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       body body connectGitLabReq true "Account tokens"
// @Success     200 {object} gitlabCredentialResp
// @Failure     409 {object} response.Resp "OAuth application missing"
// @Router      /api/v1/credentials/gitlab [POST]
func (h *handler) ConnectGitLab(c *gin.Context) {
	var req connectGitLabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	cred, err := h.uc.ConnectGitLab(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, newGitLabCredentialResp(cred))
}

// DisconnectGitLab godoc
// @Summary     Disconnect a GitLab account
// @Description Deletes the credential and every enabled-project link that uses it.
// @Tags        Credentials
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Credential ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/credentials/gitlab/{id} [DELETE]
func (h *handler) DisconnectGitLab(c *gin.Context) {
	if err := h.uc.DisconnectGitLab(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, nil)
}

// EnableProject godoc
// @Summary     Enable a GitLab project
// @Description Links a registered GitLab repository to this credential.
// @Tags        Credentials
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       id   path string           true "Credential ID"
// @Param       body body enableProjectReq true "Project"
// @Success     200 {object} enabledProjectResp
// @Failure     404 {object} response.Resp "Credential not found"
// @Failure     422 {object} response.Resp "Repository mismatch"
// @Router      /api/v1/credentials/gitlab/{id}/projects [POST]
func (h *handler) EnableProject(c *gin.Context) {
	var req enableProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	link, err := h.uc.EnableProject(c.Request.Context(), credential.EnableProjectInput{
		CredentialID: c.Param("id"),
		RepositoryID: req.RepositoryID,
		ProjectID:    req.ProjectID,
	})
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}
	response.OK(c, enabledProjectResp{
		ID:           link.ID,
		RepositoryID: link.RepositoryID,
		CredentialID: link.CredentialID,
		ProjectID:    link.ProjectID,
	})
}
