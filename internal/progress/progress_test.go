package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"chainvora/internal/apperr"
	"chainvora/internal/db/dbtest"
	"chainvora/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) *progress.Tracker {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return progress.New(dbtest.Stores(t).Progress, func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
}

func TestMilestones(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	m, err := tr.AddMilestone(ctx, "CenterA", "Classroom built")
	require.NoError(t, err)
	_, err = tr.AddMilestone(ctx, "CenterB", "Well dug")
	require.NoError(t, err)

	done, err := tr.CompleteMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	onlyA, err := tr.ListMilestones(ctx, "CenterA")
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.True(t, onlyA[0].Completed)

	all, err := tr.ListMilestones(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = tr.AddMilestone(ctx, "CenterA", "")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = tr.CompleteMilestone(ctx, 999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestStatusUpdates(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	first, err := tr.PostStatusUpdate(ctx, "CenterA", "Books delivered", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", first.Date)

	_, err = tr.PostStatusUpdate(ctx, "CenterA", "Teachers hired", "2026-08-20")
	require.NoError(t, err)

	_, err = tr.PostStatusUpdate(ctx, "CenterA", "x", "20/08/2026")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	updates, err := tr.ListStatusUpdates(ctx, "CenterA")
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "Teachers hired", updates[0].Update, "newest first")
}
