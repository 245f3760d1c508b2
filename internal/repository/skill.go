package repository

import (
	"context"
	"errors"

	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository defines persistence operations for skills and the
// user-skill associations built on them.
type SkillRepository interface {
	// FindOrCreate resolves a skill row by unique name, creating it with the
	// given category when absent. Concurrent creation attempts for the same
	// name resolve to the same row instead of erroring.
	FindOrCreate(ctx context.Context, name, category string) (*models.Skill, error)
	GetByName(ctx context.Context, name string) (*models.Skill, error)
	CreateAssociation(ctx context.Context, assoc *models.UserSkill) error
	GetAssociation(ctx context.Context, id uint) (*models.UserSkill, error)
	DeleteAssociation(ctx context.Context, id uint) error
	GetUserSkills(ctx context.Context, userID uint) ([]models.UserSkill, error)
	GetUserSkillsByType(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error)
	TrendingByTeachCount(ctx context.Context, limit int) ([]models.TrendingSkill, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) FindOrCreate(ctx context.Context, name, category string) (*models.Skill, error) {
	skill := models.Skill{Name: name, Category: category}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&skill).Error
	if err != nil && !isUniqueConstraintError(err) {
		return nil, models.NewInternalError(err)
	}

	// DoNothing leaves the struct without an ID when the row already
	// existed, so always re-read by name.
	var out models.Skill
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &out, nil
}

func (r *skillRepository) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) CreateAssociation(ctx context.Context, assoc *models.UserSkill) error {
	if err := r.db.WithContext(ctx).Create(assoc).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already declared this skill")
		}
		return models.NewInternalError(err)
	}
	// Load the skill for the response view.
	if err := r.db.WithContext(ctx).Preload("Skill").First(assoc, assoc.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) GetAssociation(ctx context.Context, id uint) (*models.UserSkill, error) {
	var assoc models.UserSkill
	if err := r.db.WithContext(ctx).Preload("Skill").First(&assoc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill association", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &assoc, nil
}

func (r *skillRepository) DeleteAssociation(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.UserSkill{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) GetUserSkills(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	var assocs []models.UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Skill").
		Order("id ASC").
		Find(&assocs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return assocs, nil
}

func (r *skillRepository) GetUserSkillsByType(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error) {
	var assocs []models.UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, skillType).
		Preload("Skill").
		Order("id ASC").
		Find(&assocs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return assocs, nil
}

func (r *skillRepository) TrendingByTeachCount(ctx context.Context, limit int) ([]models.TrendingSkill, error) {
	var rows []models.TrendingSkill
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Select(`skills.id, skills.name, skills.category,
			(SELECT COUNT(*) FROM user_skills us WHERE us.skill_id = skills.id AND us.type = ?) AS teacher_count`,
			models.SkillTypeTeach).
		Order("teacher_count DESC").
		Order("skills.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
