package achievement

import (
	"time"

	"gorm.io/datatypes"
)

// RuleKind selects the evaluation algorithm for an achievement definition.
type RuleKind string

const (
	RuleKindHours         RuleKind = "hours"
	RuleKindEvents        RuleKind = "events"
	RuleKindFrequency     RuleKind = "frequency"
	RuleKindCertification RuleKind = "certification"
	RuleKindCustom        RuleKind = "custom"
)

// Definition is a configured achievement rule. Definitions are managed
// elsewhere; this engine treats them as read-only.
type Definition struct {
	AchievementID  string            `gorm:"column:achievement_id;primaryKey"`
	OrganizationID string            `gorm:"column:organization_id;index"`
	Title          string            `gorm:"column:title;not null"`
	Description    string            `gorm:"column:description"`
	RuleKind       RuleKind          `gorm:"column:rule_kind;type:varchar(30)"`
	Criteria       datatypes.JSONMap `gorm:"column:criteria"`
	IsMilestone    bool              `gorm:"column:is_milestone"`
	IsEnabled      bool              `gorm:"column:is_enabled;index"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
}

func (Definition) TableName() string { return "achievement_definitions" }

// Award records that a user has earned an achievement. The composite unique
// index is the storage-level guarantee that at most one award exists per
// (user, achievement) pair; the insert path relies on it, not on
// application-level sequencing.
type Award struct {
	ID            string            `gorm:"column:id;primaryKey"`
	UserID        string            `gorm:"column:user_id;uniqueIndex:idx_awards_user_achievement;not null"`
	AchievementID string            `gorm:"column:achievement_id;uniqueIndex:idx_awards_user_achievement;not null"`
	AwardedAt     time.Time         `gorm:"column:awarded_at"`
	Metadata      datatypes.JSONMap `gorm:"column:metadata"`
	GrantedBy     string            `gorm:"column:granted_by"`
	GrantReason   string            `gorm:"column:grant_reason"`
}

func (Award) TableName() string { return "user_achievement_awards" }

// Automatic reports whether the award was granted by evaluation rather than
// by an admin.
func (a *Award) Automatic() bool { return a.GrantedBy == "" }

// Progress is the single partial-progress row kept per (user, achievement)
// pair for milestone achievements that are not yet earned.
type Progress struct {
	ID              string    `gorm:"column:id;primaryKey"`
	UserID          string    `gorm:"column:user_id;uniqueIndex:idx_progress_user_achievement;not null"`
	AchievementID   string    `gorm:"column:achievement_id;uniqueIndex:idx_progress_user_achievement;not null"`
	CurrentValue    float64   `gorm:"column:current_value"`
	TargetValue     float64   `gorm:"column:target_value"`
	Percentage      int       `gorm:"column:percentage"`
	LastEvaluatedAt time.Time `gorm:"column:last_evaluated_at"`
}

func (Progress) TableName() string { return "achievement_progress" }
