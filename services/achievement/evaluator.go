package achievement

import (
	"context"

	"github.com/SohaibKhaliq/Volunteer-System-sub001/services/activity"
)

// ActivitySource supplies the aggregated activity data the evaluators consume.
// The production implementation is activity.Aggregator.
type ActivitySource interface {
	SumApprovedHours(ctx context.Context, userID string, f activity.Filter) (float64, error)
	CountPresentEvents(ctx context.Context, userID string, f activity.Filter) (int64, error)
	ApprovedCertificationTypes(ctx context.Context, userID string, types []string) (map[string]struct{}, error)
	MonthlyApprovedHours(ctx context.Context, userID string) ([]activity.MonthlyHours, error)
}

// ProgressValue is the partial-progress measurement a rule reports when the
// achievement is not yet earned.
type ProgressValue struct {
	Current float64
	Target  float64
}

// Result is the outcome of evaluating one definition for one user.
type Result struct {
	Earned   bool
	Progress *ProgressValue
	Metadata map[string]any
}

type kindEvaluator interface {
	Evaluate(ctx context.Context, userID string, c Criteria) (Result, error)
}

// Evaluator dispatches a definition to the evaluator for its rule kind.
// Unrecognized kinds fall through to the legacy adapter, which re-dispatches
// on the `type` discriminator embedded in the criteria bag. The legacy path
// exists for definitions created before explicit rule kinds and should not be
// used by new configuration.
type Evaluator struct {
	kinds  map[RuleKind]kindEvaluator
	legacy legacyEvaluator
}

func NewEvaluator(source ActivitySource) *Evaluator {
	hours := hoursEvaluator{source: source}
	events := eventsEvaluator{source: source}
	return &Evaluator{
		kinds: map[RuleKind]kindEvaluator{
			RuleKindHours:         hours,
			RuleKindEvents:        events,
			RuleKindFrequency:     frequencyEvaluator{source: source},
			RuleKindCertification: certificationEvaluator{source: source},
			RuleKindCustom:        customEvaluator{},
		},
		legacy: legacyEvaluator{hours: hours, events: events},
	}
}

func (e *Evaluator) Evaluate(ctx context.Context, userID string, def *Definition) (Result, error) {
	criteria := ParseCriteria(def.Criteria)
	if kind, ok := e.kinds[def.RuleKind]; ok {
		return kind.Evaluate(ctx, userID, criteria)
	}
	return e.legacy.Evaluate(ctx, userID, criteria)
}

type hoursEvaluator struct {
	source ActivitySource
}

func (e hoursEvaluator) Evaluate(ctx context.Context, userID string, c Criteria) (Result, error) {
	sum, err := e.source.SumApprovedHours(ctx, userID, activity.Filter{
		OrganizationID: c.OrganizationID,
		SinceDays:      c.SinceDays,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Earned:   sum >= c.Threshold,
		Progress: &ProgressValue{Current: sum, Target: c.Threshold},
		Metadata: map[string]any{"hours": sum, "threshold": c.Threshold},
	}, nil
}

type eventsEvaluator struct {
	source ActivitySource
}

func (e eventsEvaluator) Evaluate(ctx context.Context, userID string, c Criteria) (Result, error) {
	count, err := e.source.CountPresentEvents(ctx, userID, activity.Filter{
		OrganizationID: c.OrganizationID,
		SinceDays:      c.SinceDays,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Earned:   float64(count) >= c.Threshold,
		Progress: &ProgressValue{Current: float64(count), Target: c.Threshold},
		Metadata: map[string]any{"events": count, "threshold": c.Threshold},
	}, nil
}

// certificationEvaluator is all-or-nothing: every required type must have a
// currently-approved document. It never reports partial progress.
type certificationEvaluator struct {
	source ActivitySource
}

func (e certificationEvaluator) Evaluate(ctx context.Context, userID string, c Criteria) (Result, error) {
	held, err := e.source.ApprovedCertificationTypes(ctx, userID, c.RequiredTypes)
	if err != nil {
		return Result{}, err
	}

	earned := true
	for _, required := range c.RequiredTypes {
		if _, ok := held[required]; !ok {
			earned = false
			break
		}
	}

	return Result{
		Earned:   earned,
		Metadata: map[string]any{"required": len(c.RequiredTypes), "held": len(held)},
	}, nil
}

type frequencyEvaluator struct {
	source ActivitySource
}

func (e frequencyEvaluator) Evaluate(ctx context.Context, userID string, c Criteria) (Result, error) {
	months, err := e.source.MonthlyApprovedHours(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	run := MaxConsecutiveQualifyingMonths(months, c.MinHoursPerMonth)

	return Result{
		Earned:   run >= c.ConsecutiveMonths,
		Progress: &ProgressValue{Current: float64(run), Target: float64(c.ConsecutiveMonths)},
		Metadata: map[string]any{"consecutiveMonths": run, "required": c.ConsecutiveMonths},
	}, nil
}

// customEvaluator is the extension point for pluggable rules. Until a rule is
// plugged in it never awards.
type customEvaluator struct{}

func (customEvaluator) Evaluate(ctx context.Context, userID string, c Criteria) (Result, error) {
	return Result{Earned: false}, nil
}

// legacyEvaluator handles definitions with no recognized rule kind by
// re-dispatching on the criteria-embedded discriminator.
type legacyEvaluator struct {
	hours  hoursEvaluator
	events eventsEvaluator
}

func (e legacyEvaluator) Evaluate(ctx context.Context, userID string, c Criteria) (Result, error) {
	switch RuleKind(c.LegacyType) {
	case RuleKindHours:
		return e.hours.Evaluate(ctx, userID, c)
	case RuleKindEvents:
		return e.events.Evaluate(ctx, userID, c)
	default:
		return Result{Earned: false}, nil
	}
}
