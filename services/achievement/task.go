package achievement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var TaskModule = fx.Module("task.achievement",
	fx.Provide(NewTask),
)

// Task adapts the evaluation service to asynq. Upstream systems enqueue an
// evaluate_user task whenever a user's activity changes (hours approved,
// attendance recorded, document verified).
type Task struct {
	svc   *Service
	asynq *asynq.Client
}

type TaskParams struct {
	fx.In

	Service *Service
	Asynq   *asynq.Client
}

func NewTask(p TaskParams) *Task {
	return &Task{
		svc:   p.Service,
		asynq: p.Asynq,
	}
}

func (s *Task) HandleEvaluateUserTask(ctx context.Context, t *asynq.Task) error {
	var payload EvaluateUserPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	zapLog := zap.L().With(
		zap.String("task_type", t.Type()),
		zap.String("user_id", payload.UserID),
		zap.String("achievement_id", payload.AchievementID),
		zap.String("trace_id", payload.TraceID),
	)
	zapLog.Info("▶️ start achievement evaluation task")

	summary, err := s.svc.EvaluateForUser(ctx, payload.UserID, payload.AchievementID)
	if err != nil {
		zapLog.Error("evaluation batch failed",
			zap.Int("awarded", summary.Awarded),
			zap.Int("updated", summary.Updated),
			zap.Error(err),
		)
		return err
	}

	zapLog.Info("🎉 evaluation batch completed",
		zap.Int("awarded", summary.Awarded),
		zap.Int("updated", summary.Updated),
	)
	return nil
}

// EnqueueEvaluateUser schedules an evaluation batch for the user on the
// configured queue.
func (s *Task) EnqueueEvaluateUser(ctx context.Context, payload EvaluateUserPayload, queue string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.asynq.EnqueueContext(ctx, asynq.NewTask(TaskEvaluateUser, data), asynq.Queue(queue))
	return err
}
