package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
)

// ActivityService owns the team activity log.
type ActivityService struct {
	activities *repository.Activities
}

// NewActivityService creates the activity service.
func NewActivityService(activities *repository.Activities) *ActivityService {
	return &ActivityService{activities: activities}
}

// Create records a new activity.
func (s *ActivityService) Create(ctx context.Context, req model.ActivityCreateRequest, creatorID uint) (*model.Activity, error) {
	if err := validateActivityType(req.Type); err != nil {
		return nil, err
	}

	activity := &model.Activity{
		Title:        req.Title,
		Description:  req.Description,
		ActivityDate: req.ActivityDate,
		Type:         req.Type,
		Participants: req.Participants,
		Location:     req.Location,
		Images:       req.Images,
		CreatedBy:    creatorID,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, apperr.Dependency("database", err)
	}

	logrus.Infof("Activity created: %s (id %d)", activity.Title, activity.ID)
	return activity, nil
}

// Update applies a partial update to an activity.
func (s *ActivityService) Update(ctx context.Context, id uint, req model.ActivityUpdateRequest) (*model.Activity, error) {
	activity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.ActivityDate != nil {
		activity.ActivityDate = *req.ActivityDate
	}
	if req.Type != nil {
		if err := validateActivityType(*req.Type); err != nil {
			return nil, err
		}
		activity.Type = *req.Type
	}
	if req.Participants != nil {
		activity.Participants = req.Participants
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	if req.Images != nil {
		activity.Images = req.Images
	}

	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, apperr.Dependency("database", err)
	}
	return activity, nil
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return apperr.Dependency("database", err)
	}
	return nil
}

// Get returns an activity by id.
func (s *ActivityService) Get(ctx context.Context, id uint) (*model.Activity, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if activity == nil {
		return nil, apperr.NotFound("activity")
	}
	return activity, nil
}

// List returns a page of activities with an optional type filter.
func (s *ActivityService) List(ctx context.Context, activityType model.ActivityType, page, pageSize int) ([]model.Activity, int64, error) {
	if activityType != "" {
		if err := validateActivityType(activityType); err != nil {
			return nil, 0, err
		}
	}
	activities, total, err := s.activities.List(ctx, activityType, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Dependency("database", err)
	}
	return activities, total, nil
}

func validateActivityType(t model.ActivityType) error {
	switch t {
	case model.ActivityMeeting, model.ActivitySeminar, model.ActivityStudy, model.ActivityProject:
		return nil
	default:
		return apperr.Validation("type", "unknown activity type")
	}
}
