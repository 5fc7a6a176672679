package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SubscriptionService maintains the canonical newsletter recipient roster.
// Subscriber rows are soft-deleted only: unsubscribing flips is_active so
// consent history stays auditable.
type SubscriptionService struct {
	subscribers *repository.Subscribers
	metrics     *metrics.Metrics
}

// NewSubscriptionService creates the subscription service.
func NewSubscriptionService(subscribers *repository.Subscribers, m *metrics.Metrics) *SubscriptionService {
	return &SubscriptionService{subscribers: subscribers, metrics: m}
}

// NormalizeEmail trims and lowercases an email address. All registry
// lookups and uniqueness checks run on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" || len(email) > 255 || !emailPattern.MatchString(email) {
		return apperr.Validation("email", "malformed email address")
	}
	return nil
}

// Subscribe activates a subscription for the email, creating the row on
// first contact and reactivating an unsubscribed one otherwise. Subscribing
// an already-active email is a no-op success.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (model.SubscriptionStatus, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return model.SubscriptionStatus{}, err
	}

	sub, err := s.subscribers.FindByEmail(ctx, email)
	if err != nil {
		return model.SubscriptionStatus{}, apperr.Dependency("database", err)
	}

	now := time.Now()
	switch {
	case sub == nil:
		sub = &model.Subscriber{
			Email:            email,
			IsActive:         true,
			UnsubscribeToken: uuid.NewString(),
			SubscribedAt:     now,
		}
		if err := s.subscribers.Create(ctx, sub); err != nil {
			return model.SubscriptionStatus{}, apperr.Dependency("database", err)
		}
		s.metrics.Subscribes.Inc()
		logrus.Infof("New subscriber: %s", email)
	case !sub.IsActive:
		// Reactivate the existing row; created_at is preserved.
		sub.IsActive = true
		sub.SubscribedAt = now
		sub.UnsubscribedAt = nil
		if err := s.subscribers.Save(ctx, sub); err != nil {
			return model.SubscriptionStatus{}, apperr.Dependency("database", err)
		}
		s.metrics.Subscribes.Inc()
		logrus.Infof("Reactivated subscription for %s", email)
	default:
		logrus.Debugf("Already subscribed: %s", email)
	}

	s.refreshActiveGauge(ctx)
	subscribedAt := sub.SubscribedAt
	return model.SubscriptionStatus{
		Subscribed:   true,
		Email:        sub.Email,
		SubscribedAt: &subscribedAt,
	}, nil
}

// Unsubscribe deactivates the subscription for the email. Unknown or
// already-inactive emails are a no-op success, so the call is idempotent.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	sub, err := s.subscribers.FindByEmail(ctx, email)
	if err != nil {
		return apperr.Dependency("database", err)
	}
	return s.deactivate(ctx, sub)
}

// UnsubscribeByToken deactivates the subscription holding the one-click
// unsubscribe token embedded in newsletter emails.
func (s *SubscriptionService) UnsubscribeByToken(ctx context.Context, token string) error {
	if token == "" {
		return apperr.Validation("token", "token is required")
	}

	sub, err := s.subscribers.FindByToken(ctx, token)
	if err != nil {
		return apperr.Dependency("database", err)
	}
	return s.deactivate(ctx, sub)
}

func (s *SubscriptionService) deactivate(ctx context.Context, sub *model.Subscriber) error {
	if sub == nil || !sub.IsActive {
		return nil
	}

	now := time.Now()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	if err := s.subscribers.Save(ctx, sub); err != nil {
		return apperr.Dependency("database", err)
	}

	s.metrics.Unsubscribes.Inc()
	s.refreshActiveGauge(ctx)
	logrus.Infof("Unsubscribed: %s", sub.Email)
	return nil
}

// Status reports whether the email is currently subscribed. The response
// shape is identical whether or not the email has ever been seen, so the
// endpoint cannot be used to probe for known addresses.
func (s *SubscriptionService) Status(ctx context.Context, email string) (model.SubscriptionStatus, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return model.SubscriptionStatus{}, err
	}

	sub, err := s.subscribers.FindByEmail(ctx, email)
	if err != nil {
		return model.SubscriptionStatus{}, apperr.Dependency("database", err)
	}

	status := model.SubscriptionStatus{Subscribed: false, Email: email}
	if sub != nil && sub.IsActive {
		subscribedAt := sub.SubscribedAt
		status.Subscribed = true
		status.SubscribedAt = &subscribedAt
	}
	return status, nil
}

// List returns a page of subscribers for the admin dashboard. Filter is one
// of "active", "inactive", "all".
func (s *SubscriptionService) List(ctx context.Context, filter string, page, pageSize int) ([]model.Subscriber, int64, error) {
	switch filter {
	case "", "all":
		filter = "all"
	case "active", "inactive":
	default:
		return nil, 0, apperr.Validation("filter", fmt.Sprintf("unknown filter %q", filter))
	}

	subs, total, err := s.subscribers.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Dependency("database", err)
	}
	return subs, total, nil
}

func (s *SubscriptionService) refreshActiveGauge(ctx context.Context) {
	count, err := s.subscribers.CountActive(ctx)
	if err != nil {
		logrus.Warnf("Failed to refresh active subscriber gauge: %v", err)
		return
	}
	s.metrics.ActiveSubscribers.Set(float64(count))
}
