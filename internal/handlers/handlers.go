package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
	"org-site-backend/internal/scheduler"
	"org-site-backend/internal/service"
)

const maxPageSize = 100

// Handlers contains all HTTP handlers
type Handlers struct {
	db            *gorm.DB
	subscriptions *service.SubscriptionService
	dispatcher    *service.Dispatcher
	requests      *service.RequestService
	blogs         *service.BlogService
	projects      *service.ProjectService
	activities    *service.ActivityService
	scheduler     *scheduler.Scheduler
}

// New creates new HTTP handlers
func New(
	db *gorm.DB,
	subscriptions *service.SubscriptionService,
	dispatcher *service.Dispatcher,
	requests *service.RequestService,
	blogs *service.BlogService,
	projects *service.ProjectService,
	activities *service.ActivityService,
	sched *scheduler.Scheduler,
) *Handlers {
	return &Handlers{
		db:            db,
		subscriptions: subscriptions,
		dispatcher:    dispatcher,
		requests:      requests,
		blogs:         blogs,
		projects:      projects,
		activities:    activities,
		scheduler:     sched,
	}
}

// writeError maps the service error taxonomy onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var (
		ve *apperr.ValidationError
		ce *apperr.ConflictError
		se *apperr.InvalidStateError
		de *apperr.DependencyError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "validation_error",
			Message: ve.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, model.ErrorResponse{
			Error:   "conflict",
			Message: ce.Error(),
			Code:    http.StatusConflict,
		})
	case errors.As(err, &se):
		if se.State == apperr.StateNotFound {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Error:   "not_found",
				Message: se.Error(),
				Code:    http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusConflict, model.ErrorResponse{
			Error:   "invalid_state",
			Message: se.Error(),
			Code:    http.StatusConflict,
		})
	case errors.As(err, &de):
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "dependency_error",
			Message: "A required dependency is unavailable, please retry",
			Code:    http.StatusServiceUnavailable,
		})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
			Code:    http.StatusInternalServerError,
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error:   "validation_error",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
