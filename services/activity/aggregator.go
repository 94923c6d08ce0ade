package activity

import (
	"context"
	"sort"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Aggregator answers time-windowed, organization-scoped questions about a
// user's approved activity. It reads tables owned by other subsystems and
// never writes.
type Aggregator struct {
	db *gorm.DB
}

type AggregatorParams struct {
	fx.In
	DB *gorm.DB
}

func NewAggregator(p AggregatorParams) *Aggregator {
	return &Aggregator{db: p.DB}
}

func (a *Aggregator) SumApprovedHours(ctx context.Context, userID string, f Filter) (float64, error) {
	query := a.db.WithContext(ctx).Model(&HourEntry{}).
		Where("user_id = ? AND status = ?", userID, StatusApproved)

	if f.OrganizationID != "" {
		query = query.Where("organization_id = ?", f.OrganizationID)
	}
	if f.SinceDays > 0 {
		query = query.Where("occurred_at >= ?", time.Now().UTC().AddDate(0, 0, -f.SinceDays))
	}

	var sum float64
	if err := query.Select("COALESCE(SUM(hours), 0)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

func (a *Aggregator) CountPresentEvents(ctx context.Context, userID string, f Filter) (int64, error) {
	query := a.db.WithContext(ctx).Model(&EventAttendance{}).
		Joins("JOIN events ON events.id = event_attendances.event_id").
		Where("event_attendances.user_id = ? AND event_attendances.status = ?", userID, StatusPresent)

	if f.OrganizationID != "" {
		query = query.Where("events.organization_id = ?", f.OrganizationID)
	}
	if f.SinceDays > 0 {
		query = query.Where("events.starts_at >= ?", time.Now().UTC().AddDate(0, 0, -f.SinceDays))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (a *Aggregator) ApprovedCertificationTypes(ctx context.Context, userID string, types []string) (map[string]struct{}, error) {
	held := make(map[string]struct{})
	if len(types) == 0 {
		return held, nil
	}

	var found []string
	err := a.db.WithContext(ctx).Model(&ComplianceDocument{}).
		Distinct("type").
		Where("user_id = ? AND status = ? AND type IN ?", userID, StatusApproved, types).
		Pluck("type", &found).Error
	if err != nil {
		return nil, err
	}

	for _, t := range found {
		held[t] = struct{}{}
	}
	return held, nil
}

// MonthlyApprovedHours groups the user's approved hours by calendar month,
// most recent first. Grouping happens in Go so the same query runs on both
// postgres and the sqlite test database.
func (a *Aggregator) MonthlyApprovedHours(ctx context.Context, userID string) ([]MonthlyHours, error) {
	var entries []HourEntry
	err := a.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusApproved).
		Order("occurred_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]float64)
	for _, e := range entries {
		month := time.Date(e.OccurredAt.Year(), e.OccurredAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += e.Hours
	}

	months := make([]MonthlyHours, 0, len(totals))
	for month, hours := range totals {
		months = append(months, MonthlyHours{Month: month, Hours: hours})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.After(months[j].Month)
	})

	return months, nil
}
