package achievement

import (
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/config"

	"go.uber.org/fx"
)

var Module = fx.Module("achievement.service",
	fx.Provide(
		NewDefinitionRepository,
		NewAwardRepository,
		NewProgressRepository,
		NewEvaluator,
		NewAwardManager,
		NewProgressTracker,
		provideDefinitionCache,
		NewService,
	),
)

func provideDefinitionCache(repo DefinitionRepository, cfg *config.Config) *DefinitionCache {
	return NewDefinitionCache(repo, cfg.Evaluation.DefinitionCacheTTL)
}
