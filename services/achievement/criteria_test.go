package achievement

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseCriteriaFull(t *testing.T) {
	c := ParseCriteria(datatypes.JSONMap{
		"threshold":         float64(100),
		"organizationId":    "org-1",
		"sinceDays":         float64(365),
		"consecutiveMonths": float64(3),
		"minHoursPerMonth":  float64(4),
		"requiredTypes":     []any{"wwcc", "police_check"},
		"type":              "hours",
	})

	require.Equal(t, 100.0, c.Threshold)
	require.Equal(t, "org-1", c.OrganizationID)
	require.Equal(t, 365, c.SinceDays)
	require.Equal(t, 3, c.ConsecutiveMonths)
	require.Equal(t, 4.0, c.MinHoursPerMonth)
	require.Equal(t, []string{"wwcc", "police_check"}, c.RequiredTypes)
	require.Equal(t, "hours", c.LegacyType)
}

func TestParseCriteriaNilMap(t *testing.T) {
	c := ParseCriteria(nil)
	require.Zero(t, c.Threshold)
	require.Empty(t, c.OrganizationID)
	require.Zero(t, c.SinceDays)
	require.Nil(t, c.RequiredTypes)
}

func TestParseCriteriaNumericCoercion(t *testing.T) {
	c := ParseCriteria(datatypes.JSONMap{
		"threshold":         "25.5",
		"consecutiveMonths": int(6),
		"minHoursPerMonth":  int64(2),
	})
	require.Equal(t, 25.5, c.Threshold)
	require.Equal(t, 6, c.ConsecutiveMonths)
	require.Equal(t, 2.0, c.MinHoursPerMonth)
}

func TestParseCriteriaMalformedDefaults(t *testing.T) {
	c := ParseCriteria(datatypes.JSONMap{
		"threshold":      "not-a-number",
		"sinceDays":      float64(-30),
		"organizationId": float64(7),
		"requiredTypes":  "wwcc",
		"type":           []any{"hours"},
	})
	require.Zero(t, c.Threshold)
	require.Zero(t, c.SinceDays)
	require.Empty(t, c.OrganizationID)
	require.Nil(t, c.RequiredTypes)
	require.Empty(t, c.LegacyType)
}

func TestParseCriteriaRequiredTypesDropsNonStrings(t *testing.T) {
	c := ParseCriteria(datatypes.JSONMap{
		"requiredTypes": []any{"wwcc", float64(1), "", "first_aid"},
	})
	require.Equal(t, []string{"wwcc", "first_aid"}, c.RequiredTypes)
}
