package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"org-site-backend/internal/model"
)

// Newsletters provides access to newsletter rows.
type Newsletters struct {
	db *gorm.DB
}

// NewNewsletters creates a newsletter repository.
func NewNewsletters(db *gorm.DB) *Newsletters {
	return &Newsletters{db: db}
}

// Create inserts a new newsletter row.
func (r *Newsletters) Create(ctx context.Context, nl *model.Newsletter) error {
	if err := r.db.WithContext(ctx).Create(nl).Error; err != nil {
		return fmt.Errorf("failed to create newsletter: %w", err)
	}
	return nil
}

// FindByID returns the newsletter, or nil when no row exists.
func (r *Newsletters) FindByID(ctx context.Context, id uint) (*model.Newsletter, error) {
	var nl model.Newsletter
	result := r.db.WithContext(ctx).First(&nl, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find newsletter: %w", result.Error)
	}
	return &nl, nil
}

// List returns a page of newsletters, optionally filtered by status, newest
// first.
func (r *Newsletters) List(ctx context.Context, status model.NewsletterStatus, page, pageSize int) ([]model.Newsletter, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Newsletter{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count newsletters: %w", err)
	}

	var items []model.Newsletter
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list newsletters: %w", err)
	}
	return items, total, nil
}

// MarkSent flips a newsletter to sent, but only if it is still in the
// expected prior status. The conditional update is the commit point that
// serializes concurrent sends: exactly one caller observes a row change.
func (r *Newsletters) MarkSent(ctx context.Context, id uint, from model.NewsletterStatus, sentAt time.Time, sentCount int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Newsletter{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     model.NewsletterSent,
			"sent_at":    sentAt,
			"sent_count": sentCount,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark newsletter sent: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// SetSchedule moves a draft newsletter to scheduled (or back), guarded by
// the same conditional-update discipline as MarkSent.
func (r *Newsletters) SetSchedule(ctx context.Context, id uint, from, to model.NewsletterStatus, scheduledAt *time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Newsletter{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":       to,
			"scheduled_at": scheduledAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update newsletter schedule: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// DueScheduled returns scheduled newsletters whose send time has passed.
func (r *Newsletters) DueScheduled(ctx context.Context, now time.Time) ([]model.Newsletter, error) {
	var items []model.Newsletter
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", model.NewsletterScheduled, now).
		Order("scheduled_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due newsletters: %w", err)
	}
	return items, nil
}
