package achievement

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AwardManager performs the one-time act of awarding an achievement and the
// matching revoke. Awarding is idempotent: the composite unique index on the
// awards table is the source of truth, and a lost insert race degrades to
// returning the winner's row without re-firing side effects.
type AwardManager struct {
	awards      AwardRepository
	definitions DefinitionRepository
	notifier    Notifier
	audit       AuditRecorder
	node        *snowflake.Node
	logger      *zap.Logger
}

type AwardManagerParams struct {
	fx.In

	Awards      AwardRepository
	Definitions DefinitionRepository
	Notifier    Notifier
	Audit       AuditRecorder
	Node        *snowflake.Node
	Logger      *zap.Logger
}

func NewAwardManager(p AwardManagerParams) *AwardManager {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AwardManager{
		awards:      p.Awards,
		definitions: p.Definitions,
		notifier:    p.Notifier,
		audit:       p.Audit,
		node:        p.Node,
		logger:      logger,
	}
}

// GrantParams describes one award. GrantedBy and GrantReason are set only for
// manual/admin grants; automatic grants leave them empty.
type GrantParams struct {
	UserID        string
	AchievementID string
	Metadata      map[string]any
	GrantedBy     string
	GrantReason   string
}

// Award creates the award row and fires the notification and audit side
// effects. If an award already exists for the pair it is returned unchanged
// and no side effects fire. Any failure propagates as an EvaluationError.
func (m *AwardManager) Award(ctx context.Context, p GrantParams) (*Award, error) {
	span := trace.SpanFromContext(ctx)
	zapLog := m.logger.With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("user_id", p.UserID),
		zap.String("achievement_id", p.AchievementID),
	)

	existing, err := m.awards.FindByPair(ctx, p.UserID, p.AchievementID)
	if err != nil {
		return nil, evalErr(p.UserID, p.AchievementID, err)
	}
	if existing != nil {
		return existing, nil
	}

	award := &Award{
		ID:            m.node.Generate().String(),
		UserID:        p.UserID,
		AchievementID: p.AchievementID,
		AwardedAt:     time.Now().UTC(),
		Metadata:      datatypes.JSONMap(p.Metadata),
		GrantedBy:     p.GrantedBy,
		GrantReason:   p.GrantReason,
	}

	created, err := m.awards.Create(ctx, award)
	if err != nil {
		zapLog.Error("failed to create award", zap.Error(err))
		return nil, evalErr(p.UserID, p.AchievementID, err)
	}
	if !created {
		// Lost a race with a concurrent evaluation; the winner already
		// fired the side effects.
		winner, err := m.awards.FindByPair(ctx, p.UserID, p.AchievementID)
		if err != nil {
			return nil, evalErr(p.UserID, p.AchievementID, err)
		}
		return winner, nil
	}

	title, err := m.definitions.FindTitle(ctx, p.AchievementID)
	if err != nil {
		zapLog.Error("failed to resolve achievement title", zap.Error(err))
		return nil, evalErr(p.UserID, p.AchievementID, err)
	}

	if err := m.notifier.Notify(ctx, p.UserID, NotificationAchievementEarned, map[string]any{
		"achievementId": p.AchievementID,
		"title":         title,
	}); err != nil {
		zapLog.Error("failed to send award notification", zap.Error(err))
		return nil, evalErr(p.UserID, p.AchievementID, err)
	}

	action := ActionAchievementEarned
	actor := p.UserID
	if p.GrantedBy != "" {
		action = ActionAchievementGranted
		actor = p.GrantedBy
	}
	payload := map[string]any{
		"recipientId": p.UserID,
		"title":       title,
		"automatic":   p.GrantedBy == "",
	}
	if p.GrantedBy != "" {
		payload["grantedBy"] = p.GrantedBy
	}
	if p.GrantReason != "" {
		payload["reason"] = p.GrantReason
	}
	if err := m.audit.Record(ctx, actor, action, AuditTargetAchievement, p.AchievementID, payload); err != nil {
		zapLog.Error("failed to record award audit event", zap.Error(err))
		return nil, evalErr(p.UserID, p.AchievementID, err)
	}

	zapLog.Info("achievement awarded", zap.String("award_id", award.ID), zap.Bool("automatic", award.Automatic()))
	return award, nil
}

// Revoke hard-deletes an award after writing the audit trail. There is no
// revoked state: a later evaluation pass with unchanged qualifying activity
// will re-award the achievement.
func (m *AwardManager) Revoke(ctx context.Context, awardID, revokedBy, reason string) error {
	award, err := m.awards.FindByID(ctx, awardID)
	if err != nil {
		return err
	}
	if award == nil {
		return ErrAwardNotFound
	}

	title, err := m.definitions.FindTitle(ctx, award.AchievementID)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"recipientId": award.UserID,
		"title":       title,
		"revokedBy":   revokedBy,
	}
	if reason != "" {
		payload["reason"] = reason
	}

	// The audit write must land before the row disappears.
	if err := m.audit.Record(ctx, revokedBy, ActionAchievementRevoked, AuditTargetAchievement, award.AchievementID, payload); err != nil {
		return err
	}

	if err := m.awards.Delete(ctx, awardID); err != nil {
		return err
	}

	m.logger.Info("achievement revoked",
		zap.String("award_id", awardID),
		zap.String("user_id", award.UserID),
		zap.String("achievement_id", award.AchievementID),
		zap.String("revoked_by", revokedBy),
	)
	return nil
}
