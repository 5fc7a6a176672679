package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
)

// Blogs provides access to blog rows.
type Blogs struct {
	db *gorm.DB
}

// NewBlogs creates a blog repository.
func NewBlogs(db *gorm.DB) *Blogs {
	return &Blogs{db: db}
}

// Create inserts a new blog row. A slug collision surfaces as a
// ConflictError; the unique index guarantees no partial row persists.
func (r *Blogs) Create(ctx context.Context, blog *model.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("blog", blog.Slug)
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// FindByID returns the blog, or nil when no row exists.
func (r *Blogs) FindByID(ctx context.Context, id uint) (*model.Blog, error) {
	var blog model.Blog
	result := r.db.WithContext(ctx).First(&blog, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find blog: %w", result.Error)
	}
	return &blog, nil
}

// FindBySlug returns the blog with the given slug, or nil.
func (r *Blogs) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	result := r.db.WithContext(ctx).Where("slug = ?", slug).First(&blog)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find blog by slug: %w", result.Error)
	}
	return &blog, nil
}

// Save persists changes to an existing blog row, surfacing slug collisions
// as ConflictError.
func (r *Blogs) Save(ctx context.Context, blog *model.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("blog", blog.Slug)
		}
		return fmt.Errorf("failed to save blog: %w", err)
	}
	return nil
}

// Delete hard-deletes a blog row.
func (r *Blogs) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Blog{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter by one inside the database, so
// concurrent reads never lose updates. Only published rows count views.
func (r *Blogs) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&model.Blog{}).
		Where("id = ? AND status = ?", id, model.ContentPublished).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment blog views: %w", err)
	}
	return nil
}

// List returns a page of blogs with optional status and tag filters,
// ordered by publication time then creation time, newest first.
func (r *Blogs) List(ctx context.Context, status model.ContentStatus, tag string, page, pageSize int) ([]model.Blog, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Blog{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if tag != "" {
		query = query.Where(
			"tags = ? OR tags LIKE ? OR tags LIKE ? OR tags LIKE ?",
			tag, tag+",%", "%,"+tag, "%,"+tag+",%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	var blogs []model.Blog
	offset := (page - 1) * pageSize
	err := query.Order("published_at IS NULL, published_at DESC, created_at DESC").
		Offset(offset).Limit(pageSize).Find(&blogs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, total, nil
}
