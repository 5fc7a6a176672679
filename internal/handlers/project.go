package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"org-site-backend/internal/model"
)

// ListProjects handles GET /api/projects. Anonymous callers only see
// published projects.
func (h *Handlers) ListProjects(c *gin.Context) {
	page, pageSize := parsePagination(c)
	category := c.Query("category")

	status := model.ContentStatus(c.Query("status"))
	if !isAdmin(c) {
		status = model.ContentPublished
	}

	projects, total, err := h.projects.List(c.Request.Context(), status, category, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPagedResponse(projects, total, page, pageSize))
}

// GetProject handles GET /api/projects/:slug
func (h *Handlers) GetProject(c *gin.Context) {
	admin := isAdmin(c)

	project, err := h.projects.GetBySlug(c.Request.Context(), c.Param("slug"), !admin)
	if err != nil {
		writeError(c, err)
		return
	}
	if !admin && project.Status != model.ContentPublished {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "not_found",
			Message: "project not found",
			Code:    http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /api/admin/projects
func (h *Handlers) CreateProject(c *gin.Context) {
	var req model.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /api/admin/projects/:id
func (h *Handlers) UpdateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.projects.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// PublishProject handles POST /api/admin/projects/:id/publish
func (h *Handlers) PublishProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projects.Publish(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// ArchiveProject handles POST /api/admin/projects/:id/archive
func (h *Handlers) ArchiveProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projects.Archive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/admin/projects/:id
func (h *Handlers) DeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
