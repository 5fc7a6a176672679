package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"org-site-backend/internal/model"
)

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	response := model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Database:  "connected",
		Scheduler: "stopped",
	}

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		response.Status = "unhealthy"
		response.Database = "disconnected"
	}

	if h.scheduler.IsRunning() {
		response.Scheduler = "running"
	}

	code := http.StatusOK
	if response.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, response)
}
