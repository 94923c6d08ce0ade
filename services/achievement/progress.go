package achievement

import (
	"context"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProgressTracker maintains the partial-progress row for milestone
// achievements that are not yet earned.
type ProgressTracker struct {
	repo   ProgressRepository
	node   *snowflake.Node
	logger *zap.Logger
}

type ProgressTrackerParams struct {
	fx.In

	Repository ProgressRepository
	Node       *snowflake.Node
	Logger     *zap.Logger
}

func NewProgressTracker(p ProgressTrackerParams) *ProgressTracker {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressTracker{
		repo:   p.Repository,
		node:   p.Node,
		logger: logger,
	}
}

// UpdateProgress upserts the (user, achievement) progress row. A
// non-positive target means the milestone is misconfigured; the upsert is
// skipped so the batch keeps going.
func (t *ProgressTracker) UpdateProgress(ctx context.Context, userID, achievementID string, current, target float64) error {
	if target <= 0 {
		t.logger.Warn("skipping progress update for non-positive target",
			zap.String("user_id", userID),
			zap.String("achievement_id", achievementID),
			zap.Float64("target", target),
		)
		return nil
	}

	percentage := int(math.Round(current / target * 100))
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	return t.repo.Upsert(ctx, &Progress{
		ID:              t.node.Generate().String(),
		UserID:          userID,
		AchievementID:   achievementID,
		CurrentValue:    current,
		TargetValue:     target,
		Percentage:      percentage,
		LastEvaluatedAt: time.Now().UTC(),
	})
}
