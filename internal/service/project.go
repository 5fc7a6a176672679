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

// ProjectService owns showcased projects; the publication state machine is
// the same one blogs use.
type ProjectService struct {
	projects *repository.Projects
	metrics  *metrics.Metrics
}

// NewProjectService creates the project service.
func NewProjectService(projects *repository.Projects, m *metrics.Metrics) *ProjectService {
	return &ProjectService{projects: projects, metrics: m}
}

// Create creates a project. The slug is derived from the name unless
// supplied; collisions fail with ConflictError.
func (s *ProjectService) Create(ctx context.Context, req model.ProjectCreateRequest) (*model.Project, error) {
	status := req.Status
	if status == "" {
		status = model.ContentDraft
	}
	if err := validateContentStatus(status); err != nil {
		return nil, err
	}

	projectSlug, err := resolveSlug(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:         req.Name,
		Slug:         projectSlug,
		Description:  req.Description,
		Content:      req.Content,
		GithubURL:    req.GithubURL,
		DemoURL:      req.DemoURL,
		ThumbnailURL: req.ThumbnailURL,
		TechStack:    req.TechStack,
		Category:     req.Category,
		Status:       status,
	}
	if status == model.ContentPublished {
		now := time.Now()
		project.PublishedAt = &now
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	logrus.Infof("Project created: %s (id %d, slug %s)", project.Name, project.ID, project.Slug)
	return project, nil
}

// Update applies a partial update with the same slug and publication rules
// as blog updates.
func (s *ProjectService) Update(ctx context.Context, id uint, req model.ProjectUpdateRequest) (*model.Project, error) {
	project, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Content != nil {
		project.Content = *req.Content
	}
	if req.GithubURL != nil {
		project.GithubURL = *req.GithubURL
	}
	if req.DemoURL != nil {
		project.DemoURL = *req.DemoURL
	}
	if req.ThumbnailURL != nil {
		project.ThumbnailURL = *req.ThumbnailURL
	}
	if req.TechStack != nil {
		project.TechStack = req.TechStack
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.Slug != nil && *req.Slug != project.Slug {
		if !slug.Valid(*req.Slug) {
			return nil, apperr.Validation("slug", "malformed slug")
		}
		project.Slug = *req.Slug
	}
	if req.Status != nil && *req.Status != project.Status {
		if err := validateContentStatus(*req.Status); err != nil {
			return nil, err
		}
		if *req.Status == model.ContentPublished && project.PublishedAt == nil {
			now := time.Now()
			project.PublishedAt = &now
		}
		project.Status = *req.Status
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	logrus.Infof("Project updated: %s (id %d)", project.Name, project.ID)
	return project, nil
}

// Publish transitions a project to published.
func (s *ProjectService) Publish(ctx context.Context, id uint) (*model.Project, error) {
	status := model.ContentPublished
	return s.Update(ctx, id, model.ProjectUpdateRequest{Status: &status})
}

// Archive transitions a project to archived.
func (s *ProjectService) Archive(ctx context.Context, id uint) (*model.Project, error) {
	status := model.ContentArchived
	return s.Update(ctx, id, model.ProjectUpdateRequest{Status: &status})
}

// Delete hard-deletes a project.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return apperr.Dependency("database", err)
	}
	logrus.Infof("Project deleted: id %d", id)
	return nil
}

// GetBySlug returns a project for the canonical detail view, counting one
// view when the project is published.
func (s *ProjectService) GetBySlug(ctx context.Context, slugValue string, countView bool) (*model.Project, error) {
	project, err := s.projects.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project")
	}
	return s.afterRead(ctx, project, countView)
}

// GetByID returns a project by id with the same view-count semantics.
func (s *ProjectService) GetByID(ctx context.Context, id uint, countView bool) (*model.Project, error) {
	project, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.afterRead(ctx, project, countView)
}

// List returns a page of projects with optional status and category
// filters.
func (s *ProjectService) List(ctx context.Context, status model.ContentStatus, category string, page, pageSize int) ([]model.Project, int64, error) {
	if status != "" {
		if err := validateContentStatus(status); err != nil {
			return nil, 0, err
		}
	}
	projects, total, err := s.projects.List(ctx, status, category, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Dependency("database", err)
	}
	return projects, total, nil
}

func (s *ProjectService) getByID(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project")
	}
	return project, nil
}

func (s *ProjectService) afterRead(ctx context.Context, project *model.Project, countView bool) (*model.Project, error) {
	if countView && project.Status == model.ContentPublished {
		if err := s.projects.IncrementViews(ctx, project.ID); err != nil {
			logrus.Warnf("Failed to count view for project %d: %v", project.ID, err)
		} else {
			project.ViewCount++
			s.metrics.ContentViews.WithLabelValues("project").Inc()
		}
	}
	return project, nil
}
