package activity

import "time"

const (
	StatusApproved = "approved"
	StatusPresent  = "present"
)

// HourEntry is a volunteer's logged time. Owned by the hours subsystem; this
// package only reads it.
type HourEntry struct {
	ID             string    `gorm:"column:id;primaryKey"`
	UserID         string    `gorm:"column:user_id;index;not null"`
	OrganizationID string    `gorm:"column:organization_id;index"`
	Hours          float64   `gorm:"column:hours;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);index"`
	OccurredAt     time.Time `gorm:"column:occurred_at;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (HourEntry) TableName() string { return "hour_entries" }

// Event is the organization-scoped activity an attendance record belongs to.
type Event struct {
	ID             string    `gorm:"column:id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id;index"`
	Title          string    `gorm:"column:title"`
	StartsAt       time.Time `gorm:"column:starts_at;index"`
}

func (Event) TableName() string { return "events" }

// EventAttendance marks a user's presence at an event.
type EventAttendance struct {
	ID        string    `gorm:"column:id;primaryKey"`
	EventID   string    `gorm:"column:event_id;index;not null"`
	UserID    string    `gorm:"column:user_id;index;not null"`
	Status    string    `gorm:"column:status;type:varchar(20)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (EventAttendance) TableName() string { return "event_attendances" }

// ComplianceDocument is a certification or clearance uploaded by a user.
type ComplianceDocument struct {
	ID        string     `gorm:"column:id;primaryKey"`
	UserID    string     `gorm:"column:user_id;index;not null"`
	Type      string     `gorm:"column:type;type:varchar(50);index"`
	Status    string     `gorm:"column:status;type:varchar(20)"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (ComplianceDocument) TableName() string { return "compliance_documents" }

// Filter narrows activity queries to an organization and a trailing window.
// Zero values mean no filtering.
type Filter struct {
	OrganizationID string
	SinceDays      int
}

// MonthlyHours is one calendar month's approved-hours total. Month is the
// first instant of the month in UTC.
type MonthlyHours struct {
	Month time.Time
	Hours float64
}
