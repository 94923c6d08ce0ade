package achievement

import (
	"strconv"

	"gorm.io/datatypes"
)

// Criteria is the fully-populated, typed form of a definition's criteria bag.
// Parsing is total: missing or malformed fields resolve to conservative
// defaults so one misconfigured achievement can never abort evaluation of the
// rest of a batch.
type Criteria struct {
	Threshold         float64
	OrganizationID    string
	SinceDays         int
	ConsecutiveMonths int
	MinHoursPerMonth  float64
	RequiredTypes     []string

	// LegacyType is the embedded discriminator used by definitions created
	// before explicit rule kinds existed.
	LegacyType string
}

// ParseCriteria converts the loosely-typed criteria bag into a Criteria.
// Numeric fields tolerate JSON numbers, integers and numeric strings;
// anything else becomes the zero default.
func ParseCriteria(raw datatypes.JSONMap) Criteria {
	return Criteria{
		Threshold:         floatField(raw, "threshold"),
		OrganizationID:    stringField(raw, "organizationId"),
		SinceDays:         intField(raw, "sinceDays"),
		ConsecutiveMonths: intField(raw, "consecutiveMonths"),
		MinHoursPerMonth:  floatField(raw, "minHoursPerMonth"),
		RequiredTypes:     stringsField(raw, "requiredTypes"),
		LegacyType:        stringField(raw, "type"),
	}
}

func floatField(raw datatypes.JSONMap, key string) float64 {
	if raw == nil {
		return 0
	}
	switch v := raw[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func intField(raw datatypes.JSONMap, key string) int {
	f := floatField(raw, key)
	if f < 0 {
		return 0
	}
	return int(f)
}

func stringField(raw datatypes.JSONMap, key string) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

func stringsField(raw datatypes.JSONMap, key string) []string {
	if raw == nil {
		return nil
	}
	items, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
