package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"org-site-backend/internal/model"
)

// Subscribers provides access to subscriber rows.
type Subscribers struct {
	db *gorm.DB
}

// NewSubscribers creates a subscriber repository.
func NewSubscribers(db *gorm.DB) *Subscribers {
	return &Subscribers{db: db}
}

// FindByEmail returns the subscriber for a normalized email, or nil when no
// row exists.
func (r *Subscribers) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	var sub model.Subscriber
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscriber: %w", result.Error)
	}
	return &sub, nil
}

// FindByToken returns the subscriber holding an unsubscribe token, or nil.
func (r *Subscribers) FindByToken(ctx context.Context, token string) (*model.Subscriber, error) {
	var sub model.Subscriber
	result := r.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscriber by token: %w", result.Error)
	}
	return &sub, nil
}

// Create inserts a new subscriber row.
func (r *Subscribers) Create(ctx context.Context, sub *model.Subscriber) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

// Save persists changes to an existing subscriber row.
func (r *Subscribers) Save(ctx context.Context, sub *model.Subscriber) error {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return fmt.Errorf("failed to save subscriber: %w", err)
	}
	return nil
}

// Active returns all currently active subscribers. This is the send-time
// snapshot source.
func (r *Subscribers) Active(ctx context.Context) ([]model.Subscriber, error) {
	var subs []model.Subscriber
	result := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&subs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load active subscribers: %w", result.Error)
	}
	return subs, nil
}

// CountActive returns the number of active subscribers.
func (r *Subscribers) CountActive(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Subscriber{}).Where("is_active = ?", true).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count active subscribers: %w", result.Error)
	}
	return count, nil
}

// List returns a page of subscribers filtered by activity, newest first.
// Filter is one of "active", "inactive", "all".
func (r *Subscribers) List(ctx context.Context, filter string, page, pageSize int) ([]model.Subscriber, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Subscriber{})
	switch filter {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	var subs []model.Subscriber
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&subs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, total, nil
}
