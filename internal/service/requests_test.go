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

func newTestRequests(t *testing.T) *RequestService {
	t.Helper()
	return NewRequestService(repository.NewRequests(newTestDB(t)))
}

func TestTopicRequestLifecycle(t *testing.T) {
	svc := newTestRequests(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.TopicRequestCreate{
		Email: " Reader@Example.com ",
		Topic: "More Go content",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", created.Email)
	assert.Equal(t, model.RequestPending, created.Status)

	accepted, err := svc.Review(ctx, created.ID, model.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.RequestAccepted, accepted.Status)

	// A reviewed request cannot be reviewed again.
	_, err = svc.Review(ctx, created.ID, model.RequestRejected)
	var se *apperr.InvalidStateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, string(model.RequestAccepted), se.State)
}

func TestTopicRequestValidation(t *testing.T) {
	svc := newTestRequests(t)
	ctx := context.Background()

	var ve *apperr.ValidationError
	_, err := svc.Create(ctx, model.TopicRequestCreate{Email: "bad-email", Topic: "x"})
	assert.ErrorAs(t, err, &ve)
	_, err = svc.Create(ctx, model.TopicRequestCreate{Email: "ok@example.com"})
	assert.ErrorAs(t, err, &ve)

	// Review only accepts a final status.
	created, err := svc.Create(ctx, model.TopicRequestCreate{Email: "ok@example.com", Topic: "topic"})
	require.NoError(t, err)
	_, err = svc.Review(ctx, created.ID, model.RequestPending)
	assert.ErrorAs(t, err, &ve)
}

func TestTopicRequestReviewUnknown(t *testing.T) {
	svc := newTestRequests(t)

	_, err := svc.Review(context.Background(), 404, model.RequestAccepted)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTopicRequestListByStatus(t *testing.T) {
	svc := newTestRequests(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, model.TopicRequestCreate{Email: "a@example.com", Topic: "one"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.TopicRequestCreate{Email: "b@example.com", Topic: "two"})
	require.NoError(t, err)
	_, err = svc.Review(ctx, first.ID, model.RequestRejected)
	require.NoError(t, err)

	pending, total, err := svc.List(ctx, model.RequestPending, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, "two", pending[0].Topic)

	_, _, err = svc.List(ctx, "bogus", 1, 10)
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}
