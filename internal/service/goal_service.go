package service

import (
	"context"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// DefaultWeeklyTarget is reported when the user never set a goal for the
// current week. It is display-only and never persisted.
const DefaultWeeklyTarget = 1

// GoalStatus is the current week's goal with live progress.
type GoalStatus struct {
	WeekStart time.Time `json:"week_start"`
	Target    int       `json:"target"`
	Completed int       `json:"completed"`
}

// GoalService owns weekly learning goals. The week in play is always
// derived from wall-clock now, so a stale stored row can never shift
// progress into the wrong week.
type GoalService struct {
	goalRepo    repository.GoalRepository
	sessionRepo repository.SessionRepository
	now         func() time.Time
}

// NewGoalService returns a new GoalService.
func NewGoalService(goalRepo repository.GoalRepository, sessionRepo repository.SessionRepository) *GoalService {
	return &GoalService{
		goalRepo:    goalRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// GetStatus returns the user's goal for the current week alongside the
// number of learning sessions completed inside it.
func (s *GoalService) GetStatus(ctx context.Context, userID uint) (*GoalStatus, error) {
	now := s.now()
	weekStart := models.StartOfWeek(now)
	weekEnd := models.EndOfWeek(now)

	target := DefaultWeeklyTarget
	goal, err := s.goalRepo.GetForWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	if goal != nil {
		target = goal.Sessions
	}

	completed, err := s.sessionRepo.CountCompletedByLearnerSince(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return &GoalStatus{
		WeekStart: weekStart,
		Target:    target,
		Completed: int(completed),
	}, nil
}

// SetTarget upserts the user's goal for the current week.
func (s *GoalService) SetTarget(ctx context.Context, userID uint, target int) (*GoalStatus, error) {
	if target < 1 {
		return nil, models.NewValidationError("Goal target must be at least 1")
	}

	goal := &models.WeeklyGoal{
		UserID:        userID,
		WeekStartDate: models.StartOfWeek(s.now()),
		Sessions:      target,
	}
	if err := s.goalRepo.Upsert(ctx, goal); err != nil {
		return nil, err
	}
	return s.GetStatus(ctx, userID)
}
