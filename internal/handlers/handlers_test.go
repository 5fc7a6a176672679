package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"org-site-backend/internal/auth"
	"org-site-backend/internal/config"
	"org-site-backend/internal/database"
	"org-site-backend/internal/handlers"
	"org-site-backend/internal/mailer"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
	"org-site-backend/internal/scheduler"
	"org-site-backend/internal/service"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	m := metrics.NewWith(prometheus.NewRegistry())
	mailCfg := &config.MailConfig{
		BaseURL:     "http://localhost:8080",
		SendTimeout: time.Second,
		MaxWorkers:  2,
	}

	subscribers := repository.NewSubscribers(db)
	newsletters := repository.NewNewsletters(db)

	subscriptions := service.NewSubscriptionService(subscribers, m)
	dispatcher := service.NewDispatcher(newsletters, subscribers, &mailer.LogSender{}, m, mailCfg)
	requests := service.NewRequestService(repository.NewRequests(db))
	blogs := service.NewBlogService(repository.NewBlogs(db), m)
	projects := service.NewProjectService(repository.NewProjects(db), m)
	activities := service.NewActivityService(repository.NewActivities(db))
	sched := scheduler.New(&config.SchedulerConfig{Enabled: true, IntervalMinutes: 60}, dispatcher)

	h := handlers.New(db, subscriptions, dispatcher, requests, blogs, projects, activities, sched)

	verifier := auth.NewStaticVerifier(map[string]auth.Identity{
		adminToken: {UserID: 1, Role: auth.RoleAdmin},
		userToken:  {UserID: 2, Role: auth.RoleUser},
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.Middleware(verifier))
	h.SetupRoutes(router)

	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubscribeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/newsletter/subscribe", "", gin.H{"email": "reader@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var status model.SubscriptionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Subscribed)
	assert.Equal(t, "reader@example.com", status.Email)

	w = doRequest(t, router, http.MethodGet, "/api/newsletter/status?email=reader@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Subscribed)
}

func TestSubscribeEndpointRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/newsletter/subscribe", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsubscribeLink(t *testing.T) {
	router, db := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/newsletter/subscribe", "", gin.H{"email": "leaver@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var sub model.Subscriber
	require.NoError(t, db.Where("email = ?", "leaver@example.com").First(&sub).Error)

	w = doRequest(t, router, http.MethodGet, "/api/newsletter/unsubscribe?token="+sub.UnsubscribeToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status model.SubscriptionStatus
	w = doRequest(t, router, http.MethodGet, "/api/newsletter/status?email=leaver@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Subscribed)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	router, _ := newTestRouter(t)
	body := gin.H{"title": "Issue 1", "content": "<p>Body</p>"}

	w := doRequest(t, router, http.MethodPost, "/api/admin/newsletters", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters", "bogus-token", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters", adminToken, body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNewsletterSendFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/newsletter/subscribe", "", gin.H{"email": "reader@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters", adminToken, gin.H{"title": "Issue 1", "content": "<p>Body</p>"})
	require.Equal(t, http.StatusCreated, w.Code)
	var nl model.Newsletter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nl))

	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters/1/send", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nl))
	assert.Equal(t, model.NewsletterSent, nl.Status)
	assert.Equal(t, 1, nl.SentCount)

	// Second send conflicts with the sent state.
	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters/1/send", adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown newsletter maps to 404.
	w = doRequest(t, router, http.MethodPost, "/api/admin/newsletters/999/send", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicBlogRoutesHideDrafts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/admin/blogs", adminToken, gin.H{
		"title": "Published Post", "content": "body", "status": "published",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/admin/blogs", adminToken, gin.H{
		"title": "Secret Draft", "content": "body",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Anonymous listing only contains published posts, whatever the filter.
	for _, path := range []string{"/api/blogs", "/api/blogs?status=draft"} {
		w = doRequest(t, router, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var page model.PagedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, int64(1), page.Total, "path %s", path)
	}

	// Admin listing can see drafts.
	w = doRequest(t, router, http.MethodGet, "/api/blogs?status=draft", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page model.PagedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)

	// An anonymous draft detail read looks like a missing page.
	w = doRequest(t, router, http.MethodGet, "/api/blogs/secret-draft", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/blogs/secret-draft", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/blogs/published-post", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var blog model.BlogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blog))
	assert.Equal(t, 1, blog.ViewCount)
}

func TestDuplicateSlugMapsToConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	body := gin.H{"title": "Same Title", "content": "body"}

	w := doRequest(t, router, http.MethodPost, "/api/admin/blogs", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/admin/blogs", adminToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTopicRequestEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/newsletter/requests", "", gin.H{
		"email": "reader@example.com", "topic": "More testing content",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPatch, "/api/admin/requests/1", adminToken, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)

	var request model.NewsletterRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))
	assert.Equal(t, model.RequestAccepted, request.Status)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health model.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Equal(t, "stopped", health.Scheduler)
}
