package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
)

func newTestActivities(t *testing.T) *ActivityService {
	t.Helper()
	return NewActivityService(repository.NewActivities(newTestDB(t)))
}

func TestActivityCRUD(t *testing.T) {
	svc := newTestActivities(t)
	ctx := context.Background()

	participants := 12
	created, err := svc.Create(ctx, model.ActivityCreateRequest{
		Title:        "Monthly Seminar",
		Description:  "Talks from members",
		ActivityDate: time.Now().Add(24 * time.Hour),
		Type:         model.ActivitySeminar,
		Participants: &participants,
		Location:     "Room 101",
		Images:       []string{"https://example.com/a.jpg"},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.CreatedBy)

	newLocation := "Main Hall"
	updated, err := svc.Update(ctx, created.ID, model.ActivityUpdateRequest{Location: &newLocation})
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", updated.Location)
	assert.Equal(t, "Monthly Seminar", updated.Title)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestActivityTypeValidation(t *testing.T) {
	svc := newTestActivities(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.ActivityCreateRequest{
		Title:        "Mystery Event",
		Description:  "desc",
		ActivityDate: time.Now(),
		Type:         "party",
	}, 1)
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, _, err = svc.List(ctx, "party", 1, 10)
	assert.ErrorAs(t, err, &ve)
}

func TestActivityListByType(t *testing.T) {
	svc := newTestActivities(t)
	ctx := context.Background()

	for i, typ := range []model.ActivityType{model.ActivityMeeting, model.ActivitySeminar, model.ActivityMeeting} {
		_, err := svc.Create(ctx, model.ActivityCreateRequest{
			Title:        "Event",
			Description:  "desc",
			ActivityDate: time.Now().Add(time.Duration(i) * time.Hour),
			Type:         typ,
		}, 1)
		require.NoError(t, err)
	}

	meetings, total, err := svc.List(ctx, model.ActivityMeeting, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, meetings, 2)

	// Most recent activity date first.
	assert.True(t, meetings[0].ActivityDate.After(meetings[1].ActivityDate))
}
