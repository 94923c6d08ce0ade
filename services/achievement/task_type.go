package achievement

const (
	TaskEvaluateUser = "achievement:evaluate_user"
)

type EvaluateUserPayload struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id,omitempty"`
	TraceID       string `json:"trace_id,omitempty"`
}
