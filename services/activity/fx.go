package activity

import "go.uber.org/fx"

var Module = fx.Module("activity.aggregator",
	fx.Provide(NewAggregator),
)
