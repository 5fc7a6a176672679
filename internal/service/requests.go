package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
)

// RequestService owns reader-submitted newsletter topic requests.
type RequestService struct {
	requests *repository.Requests
}

// NewRequestService creates the topic request service.
func NewRequestService(requests *repository.Requests) *RequestService {
	return &RequestService{requests: requests}
}

// Create records a topic request. Guests may submit; only the email and
// topic are required.
func (s *RequestService) Create(ctx context.Context, req model.TopicRequestCreate) (*model.NewsletterRequest, error) {
	email := NormalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.Topic == "" {
		return nil, apperr.Validation("topic", "topic is required")
	}

	request := &model.NewsletterRequest{
		Email:       email,
		Name:        req.Name,
		Topic:       req.Topic,
		Description: req.Description,
		Status:      model.RequestPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperr.Dependency("database", err)
	}

	logrus.Infof("Newsletter topic request created: %s by %s", request.Topic, request.Email)
	return request, nil
}

// List returns a page of topic requests, optionally filtered by status,
// highest priority first.
func (s *RequestService) List(ctx context.Context, status model.RequestStatus, page, pageSize int) ([]model.NewsletterRequest, int64, error) {
	if status != "" {
		switch status {
		case model.RequestPending, model.RequestAccepted, model.RequestRejected:
		default:
			return nil, 0, apperr.Validation("status", "unknown status")
		}
	}
	items, total, err := s.requests.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Dependency("database", err)
	}
	return items, total, nil
}

// Review accepts or rejects a pending topic request.
func (s *RequestService) Review(ctx context.Context, id uint, status model.RequestStatus) (*model.NewsletterRequest, error) {
	if status != model.RequestAccepted && status != model.RequestRejected {
		return nil, apperr.Validation("status", "status must be accepted or rejected")
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if request == nil {
		return nil, apperr.NotFound("newsletter request")
	}
	if request.Status != model.RequestPending {
		return nil, apperr.InvalidState("newsletter request", string(request.Status), "only a pending request can be reviewed")
	}

	request.Status = status
	if err := s.requests.Save(ctx, request); err != nil {
		return nil, apperr.Dependency("database", err)
	}
	return request, nil
}
