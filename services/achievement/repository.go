package achievement

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefinitionRepository reads achievement definitions. Definitions are managed
// by the configuration subsystem; this engine never writes them.
type DefinitionRepository interface {
	// ListEnabled returns enabled definitions, or the single enabled
	// definition matching achievementID when it is non-empty.
	ListEnabled(ctx context.Context, achievementID string) ([]Definition, error)
	FindTitle(ctx context.Context, achievementID string) (string, error)
}

// AwardRepository persists awards. Create is conflict-as-no-op on the
// (user_id, achievement_id) unique index so concurrent evaluations cannot
// produce duplicates.
type AwardRepository interface {
	Create(ctx context.Context, award *Award) (created bool, err error)
	FindByPair(ctx context.Context, userID, achievementID string) (*Award, error)
	FindByID(ctx context.Context, awardID string) (*Award, error)
	Delete(ctx context.Context, awardID string) error
}

// ProgressRepository upserts the single progress row per (user, achievement).
type ProgressRepository interface {
	Upsert(ctx context.Context, progress *Progress) error
	FindByPair(ctx context.Context, userID, achievementID string) (*Progress, error)
}

type gormDefinitionRepository struct {
	db *gorm.DB
}

func NewDefinitionRepository(db *gorm.DB) DefinitionRepository {
	return &gormDefinitionRepository{db: db}
}

func (r *gormDefinitionRepository) ListEnabled(ctx context.Context, achievementID string) ([]Definition, error) {
	query := r.db.WithContext(ctx).Model(&Definition{}).
		Where("is_enabled = ?", true).
		Order("achievement_id ASC")

	if achievementID != "" {
		query = query.Where("achievement_id = ?", achievementID)
	}

	var defs []Definition
	if err := query.Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *gormDefinitionRepository) FindTitle(ctx context.Context, achievementID string) (string, error) {
	var def Definition
	err := r.db.WithContext(ctx).
		Select("title").
		Where("achievement_id = ?", achievementID).
		First(&def).Error
	if err != nil {
		return "", err
	}
	return def.Title, nil
}

type gormAwardRepository struct {
	db *gorm.DB
}

func NewAwardRepository(db *gorm.DB) AwardRepository {
	return &gormAwardRepository{db: db}
}

func (r *gormAwardRepository) Create(ctx context.Context, award *Award) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(award)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormAwardRepository) FindByPair(ctx context.Context, userID, achievementID string) (*Award, error) {
	var award Award
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&award).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &award, nil
}

func (r *gormAwardRepository) FindByID(ctx context.Context, awardID string) (*Award, error) {
	var award Award
	err := r.db.WithContext(ctx).
		Where("id = ?", awardID).
		First(&award).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &award, nil
}

func (r *gormAwardRepository) Delete(ctx context.Context, awardID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", awardID).
		Delete(&Award{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type gormProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &gormProgressRepository{db: db}
}

func (r *gormProgressRepository) Upsert(ctx context.Context, progress *Progress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_value", "target_value", "percentage", "last_evaluated_at",
			}),
		}).
		Create(progress).Error
}

func (r *gormProgressRepository) FindByPair(ctx context.Context, userID, achievementID string) (*Progress, error) {
	var progress Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
