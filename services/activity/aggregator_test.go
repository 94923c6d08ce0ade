package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SohaibKhaliq/Volunteer-System-sub001/services/testutil"
)

func newAggregator(t *testing.T) (*Aggregator, func(any)) {
	t.Helper()

	db := testutil.NewTestDB(t, &HourEntry{}, &Event{}, &EventAttendance{}, &ComplianceDocument{})
	seed := func(record any) {
		require.NoError(t, db.Create(record).Error)
	}
	return NewAggregator(AggregatorParams{DB: db}), seed
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}

func TestSumApprovedHoursIgnoresUnapproved(t *testing.T) {
	a, seed := newAggregator(t)

	seed(&HourEntry{ID: "h1", UserID: "user-1", Hours: 4, Status: StatusApproved, OccurredAt: daysAgo(1)})
	seed(&HourEntry{ID: "h2", UserID: "user-1", Hours: 3, Status: "pending", OccurredAt: daysAgo(1)})
	seed(&HourEntry{ID: "h3", UserID: "user-2", Hours: 9, Status: StatusApproved, OccurredAt: daysAgo(1)})

	sum, err := a.SumApprovedHours(context.Background(), "user-1", Filter{})
	require.NoError(t, err)
	require.Equal(t, 4.0, sum)
}

func TestSumApprovedHoursNoEntries(t *testing.T) {
	a, _ := newAggregator(t)

	sum, err := a.SumApprovedHours(context.Background(), "user-1", Filter{})
	require.NoError(t, err)
	require.Zero(t, sum)
}

func TestSumApprovedHoursScopesToOrganization(t *testing.T) {
	a, seed := newAggregator(t)

	seed(&HourEntry{ID: "h1", UserID: "user-1", OrganizationID: "org-1", Hours: 4, Status: StatusApproved, OccurredAt: daysAgo(1)})
	seed(&HourEntry{ID: "h2", UserID: "user-1", OrganizationID: "org-2", Hours: 6, Status: StatusApproved, OccurredAt: daysAgo(1)})

	sum, err := a.SumApprovedHours(context.Background(), "user-1", Filter{OrganizationID: "org-1"})
	require.NoError(t, err)
	require.Equal(t, 4.0, sum)
}

func TestSumApprovedHoursTrailingWindow(t *testing.T) {
	a, seed := newAggregator(t)

	seed(&HourEntry{ID: "h1", UserID: "user-1", Hours: 4, Status: StatusApproved, OccurredAt: daysAgo(5)})
	seed(&HourEntry{ID: "h2", UserID: "user-1", Hours: 8, Status: StatusApproved, OccurredAt: daysAgo(400)})

	sum, err := a.SumApprovedHours(context.Background(), "user-1", Filter{SinceDays: 365})
	require.NoError(t, err)
	require.Equal(t, 4.0, sum)
}

func TestCountPresentEvents(t *testing.T) {
	a, seed := newAggregator(t)

	seed(&Event{ID: "e1", OrganizationID: "org-1", StartsAt: daysAgo(10)})
	seed(&Event{ID: "e2", OrganizationID: "org-2", StartsAt: daysAgo(10)})
	seed(&Event{ID: "e3", OrganizationID: "org-1", StartsAt: daysAgo(500)})

	seed(&EventAttendance{ID: "a1", EventID: "e1", UserID: "user-1", Status: StatusPresent})
	seed(&EventAttendance{ID: "a2", EventID: "e2", UserID: "user-1", Status: StatusPresent})
	seed(&EventAttendance{ID: "a3", EventID: "e3", UserID: "user-1", Status: StatusPresent})
	seed(&EventAttendance{ID: "a4", EventID: "e1", UserID: "user-1", Status: "no_show"})
	seed(&EventAttendance{ID: "a5", EventID: "e1", UserID: "user-2", Status: StatusPresent})

	count, err := a.CountPresentEvents(context.Background(), "user-1", Filter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	count, err = a.CountPresentEvents(context.Background(), "user-1", Filter{OrganizationID: "org-1"})
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = a.CountPresentEvents(context.Background(), "user-1", Filter{OrganizationID: "org-1", SinceDays: 365})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestApprovedCertificationTypes(t *testing.T) {
	a, seed := newAggregator(t)

	seed(&ComplianceDocument{ID: "d1", UserID: "user-1", Type: "wwcc", Status: StatusApproved})
	seed(&ComplianceDocument{ID: "d2", UserID: "user-1", Type: "wwcc", Status: StatusApproved})
	seed(&ComplianceDocument{ID: "d3", UserID: "user-1", Type: "police_check", Status: "pending"})
	seed(&ComplianceDocument{ID: "d4", UserID: "user-2", Type: "police_check", Status: StatusApproved})

	held, err := a.ApprovedCertificationTypes(context.Background(), "user-1", []string{"wwcc", "police_check"})
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.Contains(t, held, "wwcc")
}

func TestApprovedCertificationTypesEmptyInput(t *testing.T) {
	a, _ := newAggregator(t)

	held, err := a.ApprovedCertificationTypes(context.Background(), "user-1", nil)
	require.NoError(t, err)
	require.Empty(t, held)
}

func TestMonthlyApprovedHoursGroupsAndOrders(t *testing.T) {
	a, seed := newAggregator(t)

	jan := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC)

	seed(&HourEntry{ID: "h1", UserID: "user-1", Hours: 2, Status: StatusApproved, OccurredAt: jan})
	seed(&HourEntry{ID: "h2", UserID: "user-1", Hours: 3, Status: StatusApproved, OccurredAt: jan.AddDate(0, 0, 5)})
	seed(&HourEntry{ID: "h3", UserID: "user-1", Hours: 4, Status: StatusApproved, OccurredAt: feb})
	seed(&HourEntry{ID: "h4", UserID: "user-1", Hours: 9, Status: "rejected", OccurredAt: feb})

	months, err := a.MonthlyApprovedHours(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, months, 2)

	require.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), months[0].Month)
	require.Equal(t, 4.0, months[0].Hours)
	require.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), months[1].Month)
	require.Equal(t, 5.0, months[1].Hours)
}
