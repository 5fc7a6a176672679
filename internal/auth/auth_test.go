package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/config"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good-admin":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"user_id": 7, "role": "admin"}`))
		case "Bearer good-user":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"user_id": 8, "role": "user"}`))
		case "Bearer flaky":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestHTTPVerifier(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	verifier := NewHTTPVerifier(config.AuthConfig{IdentityURL: srv.URL, Timeout: time.Second})
	ctx := context.Background()

	id, err := verifier.Verify(ctx, "good-admin")
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Role: RoleAdmin}, id)
	assert.True(t, id.IsAdmin())

	id, err = verifier.Verify(ctx, "good-user")
	require.NoError(t, err)
	assert.False(t, id.IsAdmin())

	_, err = verifier.Verify(ctx, "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Unexpected upstream failures are retryable dependency errors, not
	// authentication failures.
	_, err = verifier.Verify(ctx, "flaky")
	var dep *apperr.DependencyError
	assert.ErrorAs(t, err, &dep)
}

func TestHTTPVerifierUnreachable(t *testing.T) {
	verifier := NewHTTPVerifier(config.AuthConfig{IdentityURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})

	_, err := verifier.Verify(context.Background(), "any")
	var dep *apperr.DependencyError
	assert.ErrorAs(t, err, &dep)
}

func newMiddlewareRouter(verifier Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(verifier))
	router.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		id, _ := FromContext(c)
		c.JSON(http.StatusOK, id)
	})
	return router
}

func TestMiddleware(t *testing.T) {
	verifier := NewStaticVerifier(map[string]Identity{
		"admin-token": {UserID: 1, Role: RoleAdmin},
		"user-token":  {UserID: 2, Role: RoleUser},
	})
	router := newMiddlewareRouter(verifier)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"anonymous open route", "/open", "", http.StatusOK},
		{"anonymous admin route", "/admin", "", http.StatusUnauthorized},
		{"malformed header", "/open", "NotBearer x", http.StatusUnauthorized},
		{"invalid token", "/admin", "Bearer bogus", http.StatusUnauthorized},
		{"user on admin route", "/admin", "Bearer user-token", http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer admin-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestMiddlewareIdentityServiceDown(t *testing.T) {
	verifier := NewHTTPVerifier(config.AuthConfig{IdentityURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	router := newMiddlewareRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer any")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
