package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"org-site-backend/internal/model"
)

// Requests provides access to newsletter topic request rows.
type Requests struct {
	db *gorm.DB
}

// NewRequests creates a topic request repository.
func NewRequests(db *gorm.DB) *Requests {
	return &Requests{db: db}
}

// Create inserts a new topic request row.
func (r *Requests) Create(ctx context.Context, req *model.NewsletterRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create newsletter request: %w", err)
	}
	return nil
}

// FindByID returns the topic request, or nil when no row exists.
func (r *Requests) FindByID(ctx context.Context, id uint) (*model.NewsletterRequest, error) {
	var req model.NewsletterRequest
	result := r.db.WithContext(ctx).First(&req, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find newsletter request: %w", result.Error)
	}
	return &req, nil
}

// Save persists changes to an existing topic request row.
func (r *Requests) Save(ctx context.Context, req *model.NewsletterRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("failed to save newsletter request: %w", err)
	}
	return nil
}

// List returns a page of topic requests with an optional status filter,
// ordered by priority then votes.
func (r *Requests) List(ctx context.Context, status model.RequestStatus, page, pageSize int) ([]model.NewsletterRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.NewsletterRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count newsletter requests: %w", err)
	}

	var items []model.NewsletterRequest
	offset := (page - 1) * pageSize
	err := query.Order("priority DESC, votes DESC, created_at DESC").
		Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list newsletter requests: %w", err)
	}
	return items, total, nil
}
