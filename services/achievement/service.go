package achievement

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Summary reports what one evaluation batch committed. When EvaluateForUser
// also returns an error, the counts reflect only the achievements processed
// before the failure; those side effects are not rolled back.
type Summary struct {
	Awarded int
	Updated int
}

// Service is the batch orchestrator. It is invoked per user by external
// triggers and processes that user's candidate definitions sequentially.
// Concurrent calls for the same user are not serialized here; the awards
// table's unique index carries the at-most-once invariant.
type Service struct {
	definitions DefinitionRepository
	awards      AwardRepository
	cache       *DefinitionCache
	evaluator   *Evaluator
	awardMgr    *AwardManager
	progress    *ProgressTracker
	logger      *zap.Logger
}

type ServiceParams struct {
	fx.In

	Definitions DefinitionRepository
	Awards      AwardRepository
	Cache       *DefinitionCache
	Evaluator   *Evaluator
	AwardMgr    *AwardManager
	Progress    *ProgressTracker
	Logger      *zap.Logger
}

func NewService(p ServiceParams) *Service {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		definitions: p.Definitions,
		awards:      p.Awards,
		cache:       p.Cache,
		evaluator:   p.Evaluator,
		awardMgr:    p.AwardMgr,
		progress:    p.Progress,
		logger:      logger,
	}
}

// EvaluateForUser evaluates every enabled definition (or the single one named
// by achievementID) for the user, awarding earned achievements and updating
// milestone progress for unearned ones. The first failure aborts the rest of
// the batch and is returned alongside the partial summary.
func (s *Service) EvaluateForUser(ctx context.Context, userID, achievementID string) (Summary, error) {
	span := trace.SpanFromContext(ctx)
	zapLog := s.logger.With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("user_id", userID),
	)

	var summary Summary

	var defs []Definition
	var err error
	if achievementID != "" {
		defs, err = s.definitions.ListEnabled(ctx, achievementID)
	} else {
		defs, err = s.cache.ListEnabled(ctx)
	}
	if err != nil {
		zapLog.Error("failed to load achievement definitions", zap.Error(err))
		return summary, evalErr(userID, achievementID, err)
	}

	for i := range defs {
		def := &defs[i]

		existing, err := s.awards.FindByPair(ctx, userID, def.AchievementID)
		if err != nil {
			zapLog.Error("failed to check existing award",
				zap.String("achievement_id", def.AchievementID), zap.Error(err))
			return summary, evalErr(userID, def.AchievementID, err)
		}
		if existing != nil {
			continue
		}

		result, err := s.evaluator.Evaluate(ctx, userID, def)
		if err != nil {
			zapLog.Error("rule evaluation failed",
				zap.String("achievement_id", def.AchievementID),
				zap.String("rule_kind", string(def.RuleKind)),
				zap.Error(err))
			return summary, evalErr(userID, def.AchievementID, err)
		}

		switch {
		case result.Earned:
			if _, err := s.awardMgr.Award(ctx, GrantParams{
				UserID:        userID,
				AchievementID: def.AchievementID,
				Metadata:      result.Metadata,
			}); err != nil {
				zapLog.Error("failed to award achievement",
					zap.String("achievement_id", def.AchievementID), zap.Error(err))
				return summary, err
			}
			summary.Awarded++

		case def.IsMilestone && result.Progress != nil:
			if err := s.progress.UpdateProgress(ctx, userID, def.AchievementID,
				result.Progress.Current, result.Progress.Target); err != nil {
				zapLog.Error("failed to update achievement progress",
					zap.String("achievement_id", def.AchievementID), zap.Error(err))
				return summary, evalErr(userID, def.AchievementID, err)
			}
			summary.Updated++
		}
	}

	return summary, nil
}

// FindProgress exposes the stored progress row for callers that render
// milestone state.
func (s *Service) FindProgress(ctx context.Context, userID, achievementID string) (*Progress, error) {
	return s.progress.repo.FindByPair(ctx, userID, achievementID)
}
