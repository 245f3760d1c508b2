package repository

import (
	"context"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalRepository defines persistence operations for weekly goals.
type GoalRepository interface {
	// Upsert writes the goal target for a given week. The (user, week)
	// unique index makes concurrent writes converge on a single row.
	Upsert(ctx context.Context, goal *models.WeeklyGoal) error
	GetForWeek(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyGoal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository returns a new GoalRepository implementation.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Upsert(ctx context.Context, goal *models.WeeklyGoal) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"sessions", "updated_at"}),
		}).
		Create(goal).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	// The upsert path does not refresh the struct when the row existed.
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", goal.UserID, goal.WeekStartDate).
		First(goal).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *goalRepository) GetForWeek(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyGoal, error) {
	var goal models.WeeklyGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		First(&goal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &goal, nil
}
