package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
)

func newTestProjects(t *testing.T) (*ProjectService, *repository.Projects) {
	t.Helper()
	db := newTestDB(t)
	projects := repository.NewProjects(db)
	return NewProjectService(projects, newTestMetrics()), projects
}

func TestProjectCreatePersistsTechStack(t *testing.T) {
	svc, projects := newTestProjects(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.ProjectCreateRequest{
		Name:      "Site Backend",
		TechStack: []string{"go", "gin", "mysql"},
		Category:  "web",
	})
	require.NoError(t, err)
	assert.Equal(t, "site-backend", created.Slug)

	stored, err := projects.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"go", "gin", "mysql"}, stored.TechStack)
}

func TestProjectDuplicateSlugConflicts(t *testing.T) {
	svc, _ := newTestProjects(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ProjectCreateRequest{Name: "Twin"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.ProjectCreateRequest{Name: "Twin"})
	var ce *apperr.ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestProjectListByCategory(t *testing.T) {
	svc, _ := newTestProjects(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ProjectCreateRequest{Name: "Web Thing", Category: "web", Status: model.ContentPublished})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.ProjectCreateRequest{Name: "CLI Thing", Category: "cli", Status: model.ContentPublished})
	require.NoError(t, err)

	web, total, err := svc.List(ctx, model.ContentPublished, "web", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, web, 1)
	assert.Equal(t, "Web Thing", web[0].Name)
}

func TestProjectViewCountOnlyForPublished(t *testing.T) {
	svc, _ := newTestProjects(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, model.ProjectCreateRequest{Name: "Hidden"})
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, draft.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ViewCount)

	published := model.ContentPublished
	_, err = svc.Update(ctx, draft.ID, model.ProjectUpdateRequest{Status: &published})
	require.NoError(t, err)

	got, err = svc.GetBySlug(ctx, draft.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
}
