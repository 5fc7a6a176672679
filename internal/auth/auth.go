package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/config"
)

// Role values issued by the identity service.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the verified (user, role) pair attached to a request.
type Identity struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Verifier resolves a bearer token to a verified identity. Token issuance
// and storage belong to the external identity service; this side only
// consumes the verification result.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// ErrInvalidToken is returned for tokens the identity service rejects.
var ErrInvalidToken = fmt.Errorf("invalid token")

// HTTPVerifier verifies tokens against the external identity service.
type HTTPVerifier struct {
	url    string
	client *http.Client
}

// NewHTTPVerifier creates a verifier backed by the identity service.
func NewHTTPVerifier(cfg config.AuthConfig) *HTTPVerifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPVerifier{
		url:    cfg.IdentityURL,
		client: &http.Client{Timeout: timeout},
	}
}

// Verify calls the identity service with the bearer token and decodes the
// (user_id, role) pair. An unreachable service surfaces as a DependencyError
// so callers can retry.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return Identity{}, apperr.Dependency("identity", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var id Identity
		if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
			return Identity{}, fmt.Errorf("failed to decode identity response: %w", err)
		}
		return id, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Identity{}, ErrInvalidToken
	default:
		return Identity{}, apperr.Dependency("identity", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// StaticVerifier resolves tokens from a fixed map. Used in tests and local
// development where no identity service runs.
type StaticVerifier struct {
	tokens map[string]Identity
}

// NewStaticVerifier creates a verifier over a fixed token map.
func NewStaticVerifier(tokens map[string]Identity) *StaticVerifier {
	return &StaticVerifier{tokens: tokens}
}

// Verify looks the token up in the static map.
func (v *StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	id, ok := v.tokens[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
