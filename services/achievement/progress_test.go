package achievement

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SohaibKhaliq/Volunteer-System-sub001/services/testutil"
)

func newProgressTracker(t *testing.T) (*ProgressTracker, ProgressRepository) {
	t.Helper()

	db := testutil.NewTestDB(t, &Progress{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := NewProgressRepository(db)
	tracker := NewProgressTracker(ProgressTrackerParams{
		Repository: repo,
		Node:       node,
		Logger:     zap.NewNop(),
	})
	return tracker, repo
}

func TestUpdateProgressCreatesRow(t *testing.T) {
	tracker, repo := newProgressTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-1", 42.5, 100))

	row, err := repo.FindByPair(ctx, "user-1", "ach-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, 42.5, row.CurrentValue)
	require.Equal(t, 100.0, row.TargetValue)
	require.Equal(t, 43, row.Percentage)
	require.False(t, row.LastEvaluatedAt.IsZero())
}

func TestUpdateProgressUpsertsSingleRow(t *testing.T) {
	tracker, repo := newProgressTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-1", 10, 100))
	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-1", 55, 100))

	row, err := repo.FindByPair(ctx, "user-1", "ach-1")
	require.NoError(t, err)
	require.Equal(t, 55.0, row.CurrentValue)
	require.Equal(t, 55, row.Percentage)

	var count int64
	gormRepo := repo.(*gormProgressRepository)
	require.NoError(t, gormRepo.db.Model(&Progress{}).Where("user_id = ?", "user-1").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpdateProgressClampsAboveTarget(t *testing.T) {
	tracker, repo := newProgressTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-1", 250, 100))

	row, err := repo.FindByPair(ctx, "user-1", "ach-1")
	require.NoError(t, err)
	require.Equal(t, 100, row.Percentage)
}

func TestUpdateProgressSkipsNonPositiveTarget(t *testing.T) {
	tracker, repo := newProgressTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-1", 10, 0))

	row, err := repo.FindByPair(ctx, "user-1", "ach-1")
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestUpdateProgressSeparatePairs(t *testing.T) {
	tracker, repo := newProgressTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-1", 10, 100))
	require.NoError(t, tracker.UpdateProgress(ctx, "user-1", "ach-2", 20, 100))
	require.NoError(t, tracker.UpdateProgress(ctx, "user-2", "ach-1", 30, 100))

	row, err := repo.FindByPair(ctx, "user-1", "ach-2")
	require.NoError(t, err)
	require.Equal(t, 20.0, row.CurrentValue)
}
