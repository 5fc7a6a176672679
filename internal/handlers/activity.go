package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"org-site-backend/internal/auth"
	"org-site-backend/internal/model"
)

// ListActivities handles GET /api/activities
func (h *Handlers) ListActivities(c *gin.Context) {
	page, pageSize := parsePagination(c)
	activityType := model.ActivityType(c.Query("type"))

	activities, total, err := h.activities.List(c.Request.Context(), activityType, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPagedResponse(activities, total, page, pageSize))
}

// GetActivity handles GET /api/activities/:id
func (h *Handlers) GetActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	activity, err := h.activities.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// CreateActivity handles POST /api/admin/activities
func (h *Handlers) CreateActivity(c *gin.Context) {
	var req model.ActivityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	id, _ := auth.FromContext(c)
	activity, err := h.activities.Create(c.Request.Context(), req, id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// UpdateActivity handles PUT /api/admin/activities/:id
func (h *Handlers) UpdateActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.ActivityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	activity, err := h.activities.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// DeleteActivity handles DELETE /api/admin/activities/:id
func (h *Handlers) DeleteActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.activities.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
