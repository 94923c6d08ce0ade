package achievement

import (
	"fmt"

	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/errutil"
)

// EvaluationError wraps any unexpected failure while evaluating a rule,
// persisting an award or emitting a side effect. It aborts the remainder of
// the user's batch when it surfaces through EvaluateForUser.
type EvaluationError struct {
	UserID        string
	AchievementID string
	Err           error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating achievement %s for user %s: %v", e.AchievementID, e.UserID, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

func evalErr(userID, achievementID string, err error) error {
	return &EvaluationError{UserID: userID, AchievementID: achievementID, Err: err}
}

// ErrAwardNotFound is returned by Revoke when the award does not exist.
var ErrAwardNotFound = errutil.NotFound("achievement award not found", nil)
