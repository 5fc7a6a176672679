package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
	"org-site-backend/internal/slug"
)

// BlogService owns blog posts and their publication state machine.
type BlogService struct {
	blogs   *repository.Blogs
	metrics *metrics.Metrics
}

// NewBlogService creates the blog service.
func NewBlogService(blogs *repository.Blogs, m *metrics.Metrics) *BlogService {
	return &BlogService{blogs: blogs, metrics: m}
}

// Create creates a blog post. The slug is derived from the title unless
// supplied explicitly; a collision fails with ConflictError rather than
// auto-suffixing, so the caller gets a predictable retry.
func (s *BlogService) Create(ctx context.Context, req model.BlogCreateRequest, authorID uint) (*model.Blog, error) {
	status := req.Status
	if status == "" {
		status = model.ContentDraft
	}
	if err := validateContentStatus(status); err != nil {
		return nil, err
	}

	blogSlug, err := resolveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	blog := &model.Blog{
		Title:    req.Title,
		Slug:     blogSlug,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		AuthorID: authorID,
		Status:   status,
	}
	blog.SetTags(req.Tags)
	if status == model.ContentPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	logrus.Infof("Blog created: %s (id %d, slug %s)", blog.Title, blog.ID, blog.Slug)
	return blog, nil
}

// Update applies a partial update. Changing the slug re-runs the uniqueness
// check; the first transition to published stamps published_at.
func (s *BlogService) Update(ctx context.Context, id uint, req model.BlogUpdateRequest) (*model.Blog, error) {
	blog, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Excerpt != nil {
		blog.Excerpt = *req.Excerpt
	}
	if req.Tags != nil {
		blog.SetTags(req.Tags)
	}
	if req.Slug != nil && *req.Slug != blog.Slug {
		if !slug.Valid(*req.Slug) {
			return nil, apperr.Validation("slug", "malformed slug")
		}
		blog.Slug = *req.Slug
	}
	if req.Status != nil && *req.Status != blog.Status {
		if err := validateContentStatus(*req.Status); err != nil {
			return nil, err
		}
		if *req.Status == model.ContentPublished && blog.PublishedAt == nil {
			now := time.Now()
			blog.PublishedAt = &now
		}
		blog.Status = *req.Status
	}

	if err := s.blogs.Save(ctx, blog); err != nil {
		return nil, err
	}

	logrus.Infof("Blog updated: %s (id %d)", blog.Title, blog.ID)
	return blog, nil
}

// Publish transitions a blog post to published.
func (s *BlogService) Publish(ctx context.Context, id uint) (*model.Blog, error) {
	status := model.ContentPublished
	return s.Update(ctx, id, model.BlogUpdateRequest{Status: &status})
}

// Archive transitions a blog post to archived.
func (s *BlogService) Archive(ctx context.Context, id uint) (*model.Blog, error) {
	status := model.ContentArchived
	return s.Update(ctx, id, model.BlogUpdateRequest{Status: &status})
}

// Delete hard-deletes a blog post.
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return apperr.Dependency("database", err)
	}
	logrus.Infof("Blog deleted: id %d", id)
	return nil
}

// GetBySlug returns a blog post for the canonical detail view. Reads of a
// published post count one view; draft views do not, so editing does not
// inflate the counter.
func (s *BlogService) GetBySlug(ctx context.Context, slugValue string, countView bool) (*model.Blog, error) {
	blog, err := s.blogs.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if blog == nil {
		return nil, apperr.NotFound("blog")
	}
	return s.afterRead(ctx, blog, countView)
}

// GetByID returns a blog post by id, with the same view-count semantics as
// GetBySlug.
func (s *BlogService) GetByID(ctx context.Context, id uint, countView bool) (*model.Blog, error) {
	blog, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.afterRead(ctx, blog, countView)
}

// List returns a page of blog posts with optional status and tag filters.
func (s *BlogService) List(ctx context.Context, status model.ContentStatus, tag string, page, pageSize int) ([]model.Blog, int64, error) {
	if status != "" {
		if err := validateContentStatus(status); err != nil {
			return nil, 0, err
		}
	}
	blogs, total, err := s.blogs.List(ctx, status, tag, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Dependency("database", err)
	}
	return blogs, total, nil
}

func (s *BlogService) getByID(ctx context.Context, id uint) (*model.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if blog == nil {
		return nil, apperr.NotFound("blog")
	}
	return blog, nil
}

func (s *BlogService) afterRead(ctx context.Context, blog *model.Blog, countView bool) (*model.Blog, error) {
	if countView && blog.Status == model.ContentPublished {
		if err := s.blogs.IncrementViews(ctx, blog.ID); err != nil {
			logrus.Warnf("Failed to count view for blog %d: %v", blog.ID, err)
		} else {
			blog.ViewCount++
			s.metrics.ContentViews.WithLabelValues("blog").Inc()
		}
	}
	return blog, nil
}

func validateContentStatus(status model.ContentStatus) error {
	switch status {
	case model.ContentDraft, model.ContentPublished, model.ContentArchived:
		return nil
	default:
		return apperr.Validation("status", "unknown status")
	}
}

func resolveSlug(explicit, title string) (string, error) {
	if explicit != "" {
		if !slug.Valid(explicit) {
			return "", apperr.Validation("slug", "malformed slug")
		}
		return explicit, nil
	}
	derived := slug.Make(title)
	if derived == "" {
		return "", apperr.Validation("title", "title produces an empty slug")
	}
	return derived, nil
}
