package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	asynqfx "github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/asynq"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/config"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/db"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/logger"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/redis"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/sequence"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/services/achievement"
	"github.com/SohaibKhaliq/Volunteer-System-sub001/services/activity"
)

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		redis.Module,
		sequence.Module,
		asynqfx.Client,
		asynqfx.Server,
		activity.Module,
		achievement.Module,
		achievement.TaskModule,
		fx.Provide(
			provideActivitySource,
			provideNotifier,
			provideAuditRecorder,
		),
		fx.Invoke(
			registerTelemetry,
			registerHandlers,
		),
		fxLogger,
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	app := fx.New(opts...)

	app.Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})

func provideActivitySource(a *activity.Aggregator) achievement.ActivitySource {
	return a
}

func registerTelemetry(cfg *config.Config, gdb *gorm.DB) error {
	if err := db.Otel(gdb); err != nil {
		return err
	}
	return db.Metric(gdb, cfg.Database.DBName)
}

func registerHandlers(mux *asynq.ServeMux, task *achievement.Task) {
	mux.HandleFunc(achievement.TaskEvaluateUser, task.HandleEvaluateUserTask)
}

// logNotifier and logAudit stand in for the notification and audit services,
// which consume these events over their own transports in production. They
// keep the engine runnable on its own.
type logNotifier struct {
	logger *zap.Logger
}

func provideNotifier(logger *zap.Logger) achievement.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(ctx context.Context, userID, kind string, payload map[string]any) error {
	n.logger.Info("notification dispatched",
		zap.String("user_id", userID),
		zap.String("kind", kind),
		zap.Any("payload", payload),
	)
	return nil
}

type logAudit struct {
	logger *zap.Logger
}

func provideAuditRecorder(logger *zap.Logger) achievement.AuditRecorder {
	return &logAudit{logger: logger}
}

func (a *logAudit) Record(ctx context.Context, actorID, action, targetType, targetID string, payload map[string]any) error {
	a.logger.Info("audit event recorded",
		zap.String("actor_id", actorID),
		zap.String("action", action),
		zap.String("target_type", targetType),
		zap.String("target_id", targetID),
		zap.Any("payload", payload),
	)
	return nil
}
