package repository

import (
	"context"
	"errors"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/gorm"
)

// SessionRepository defines persistence operations for mentoring sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint) (*models.Session, error)
	UpdateStatus(ctx context.Context, id uint, status models.SessionStatus) error
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.Session, error)
	ListByLearner(ctx context.Context, learnerID uint) ([]models.Session, error)
	RecentCompleted(ctx context.Context, limit int) ([]models.Session, error)
	CountCompletedByLearnerSince(ctx context.Context, learnerID uint, from, to time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new SessionRepository implementation.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	// Reload with the resolved participants and skill for the response view.
	return r.loadView(ctx, session)
}

func (r *sessionRepository) loadView(ctx context.Context, session *models.Session) error {
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Learner").
		Preload("Skill").
		First(session, session.ID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Learner").
		Preload("Skill").
		First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Session", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &session, nil
}

func (r *sessionRepository) UpdateStatus(ctx context.Context, id uint, status models.SessionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Session", id)
	}
	return nil
}

func (r *sessionRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Preload("Learner").
		Preload("Skill").
		Preload("Testimonials").
		Order("date DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

func (r *sessionRepository) ListByLearner(ctx context.Context, learnerID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Preload("Teacher").
		Preload("Skill").
		Preload("Testimonials").
		Order("date DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

func (r *sessionRepository) RecentCompleted(ctx context.Context, limit int) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("status = ?", models.SessionCompleted).
		Preload("Teacher").
		Preload("Learner").
		Preload("Skill").
		Order("updated_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

func (r *sessionRepository) CountCompletedByLearnerSince(ctx context.Context, learnerID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("learner_id = ? AND status = ? AND updated_at >= ? AND updated_at <= ?",
			learnerID, models.SessionCompleted, from, to).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
