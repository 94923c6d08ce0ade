package achievement

import "context"

// Notification kinds and audit actions emitted by the award path.
const (
	NotificationAchievementEarned = "achievement_earned"

	ActionAchievementEarned  = "achievement_earned"
	ActionAchievementGranted = "achievement_granted"
	ActionAchievementRevoked = "achievement_revoked"

	AuditTargetAchievement = "achievement"
)

// Notifier delivers a notification to a user. Delivery is implemented outside
// this engine; a failure here is a hard failure of the award call.
type Notifier interface {
	Notify(ctx context.Context, userID, kind string, payload map[string]any) error
}

// AuditRecorder persists an audit event. Storage is implemented outside this
// engine; a failure here is a hard failure of the calling operation.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, targetType, targetID string, payload map[string]any) error
}
