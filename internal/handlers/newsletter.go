package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"org-site-backend/internal/model"
)

// Subscribe handles POST /api/newsletter/subscribe
func (h *Handlers) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status, err := h.subscriptions.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Unsubscribe handles POST /api/newsletter/unsubscribe. The body carries
// either an email or the one-click token from a newsletter footer.
func (h *Handlers) Unsubscribe(c *gin.Context) {
	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var err error
	switch {
	case req.Token != "":
		err = h.subscriptions.UnsubscribeByToken(c.Request.Context(), req.Token)
	case req.Email != "":
		err = h.subscriptions.Unsubscribe(c.Request.Context(), req.Email)
	default:
		badRequest(c, "Either email or token is required")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unsubscribed": true})
}

// UnsubscribeLink handles GET /api/newsletter/unsubscribe?token=..., the
// link embedded in every newsletter email.
func (h *Handlers) UnsubscribeLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		badRequest(c, "Missing token")
		return
	}
	if err := h.subscriptions.UnsubscribeByToken(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unsubscribed": true})
}

// SubscriptionStatus handles GET /api/newsletter/status?email=...
func (h *Handlers) SubscriptionStatus(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "Missing email")
		return
	}

	status, err := h.subscriptions.Status(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ListSubscribers handles GET /api/admin/subscribers
func (h *Handlers) ListSubscribers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := c.DefaultQuery("filter", "all")

	subs, total, err := h.subscriptions.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPagedResponse(subs, total, page, pageSize))
}

// CreateNewsletter handles POST /api/admin/newsletters
func (h *Handlers) CreateNewsletter(c *gin.Context) {
	var req model.NewsletterCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	nl, err := h.dispatcher.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, nl)
}

// GetNewsletter handles GET /api/admin/newsletters/:id
func (h *Handlers) GetNewsletter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	nl, err := h.dispatcher.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nl)
}

// ListNewsletters handles GET /api/admin/newsletters
func (h *Handlers) ListNewsletters(c *gin.Context) {
	page, pageSize := parsePagination(c)
	status := model.NewsletterStatus(c.Query("status"))

	items, total, err := h.dispatcher.List(c.Request.Context(), status, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPagedResponse(items, total, page, pageSize))
}

// SendNewsletter handles POST /api/admin/newsletters/:id/send
func (h *Handlers) SendNewsletter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	nl, err := h.dispatcher.Send(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nl)
}

// ScheduleNewsletter handles POST /api/admin/newsletters/:id/schedule
func (h *Handlers) ScheduleNewsletter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.NewsletterScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	nl, err := h.dispatcher.Schedule(c.Request.Context(), id, req.SendAt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nl)
}

// UnscheduleNewsletter handles DELETE /api/admin/newsletters/:id/schedule
func (h *Handlers) UnscheduleNewsletter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	nl, err := h.dispatcher.Unschedule(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nl)
}

// RunDispatch handles POST /api/admin/dispatch/run, a manual trigger for the
// scheduled newsletter sweep.
func (h *Handlers) RunDispatch(c *gin.Context) {
	h.scheduler.RunOnce()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Dispatch sweep triggered",
		"next_run": h.scheduler.NextRun(),
	})
}

// CreateTopicRequest handles POST /api/newsletter/requests
func (h *Handlers) CreateTopicRequest(c *gin.Context) {
	var req model.TopicRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.requests.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListTopicRequests handles GET /api/admin/requests
func (h *Handlers) ListTopicRequests(c *gin.Context) {
	page, pageSize := parsePagination(c)
	status := model.RequestStatus(c.Query("status"))

	items, total, err := h.requests.List(c.Request.Context(), status, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPagedResponse(items, total, page, pageSize))
}

// ReviewTopicRequest handles PATCH /api/admin/requests/:id
func (h *Handlers) ReviewTopicRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.TopicRequestStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.requests.Review(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
