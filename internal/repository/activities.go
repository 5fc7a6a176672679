package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"org-site-backend/internal/model"
)

// Activities provides access to activity log rows.
type Activities struct {
	db *gorm.DB
}

// NewActivities creates an activity repository.
func NewActivities(db *gorm.DB) *Activities {
	return &Activities{db: db}
}

// Create inserts a new activity row.
func (r *Activities) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// FindByID returns the activity, or nil when no row exists.
func (r *Activities) FindByID(ctx context.Context, id uint) (*model.Activity, error) {
	var activity model.Activity
	result := r.db.WithContext(ctx).First(&activity, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find activity: %w", result.Error)
	}
	return &activity, nil
}

// Save persists changes to an existing activity row.
func (r *Activities) Save(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// Delete hard-deletes an activity row.
func (r *Activities) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Activity{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// List returns a page of activities with an optional type filter, most
// recent activity date first.
func (r *Activities) List(ctx context.Context, activityType model.ActivityType, page, pageSize int) ([]model.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Activity{})
	if activityType != "" {
		query = query.Where("type = ?", activityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	var activities []model.Activity
	offset := (page - 1) * pageSize
	err := query.Order("activity_date DESC").Offset(offset).Limit(pageSize).Find(&activities).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, total, nil
}
