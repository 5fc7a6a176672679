package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
)

// Projects provides access to project rows.
type Projects struct {
	db *gorm.DB
}

// NewProjects creates a project repository.
func NewProjects(db *gorm.DB) *Projects {
	return &Projects{db: db}
}

// Create inserts a new project row, surfacing slug collisions as
// ConflictError.
func (r *Projects) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("project", project.Slug)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// FindByID returns the project, or nil when no row exists.
func (r *Projects) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	result := r.db.WithContext(ctx).First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project: %w", result.Error)
	}
	return &project, nil
}

// FindBySlug returns the project with the given slug, or nil.
func (r *Projects) FindBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var project model.Project
	result := r.db.WithContext(ctx).Where("slug = ?", slug).First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project by slug: %w", result.Error)
	}
	return &project, nil
}

// Save persists changes to an existing project row.
func (r *Projects) Save(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("project", project.Slug)
		}
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// Delete hard-deletes a project row.
func (r *Projects) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Project{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter by one inside the database. Only
// published rows count views.
func (r *Projects) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND status = ?", id, model.ContentPublished).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment project views: %w", err)
	}
	return nil
}

// List returns a page of projects with optional status and category
// filters, newest first.
func (r *Projects) List(ctx context.Context, status model.ContentStatus, category string, page, pageSize int) ([]model.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Project{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []model.Project
	offset := (page - 1) * pageSize
	err := query.Order("published_at IS NULL, published_at DESC, created_at DESC").
		Offset(offset).Limit(pageSize).Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}
