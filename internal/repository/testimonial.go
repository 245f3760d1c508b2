package repository

import (
	"context"

	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/gorm"
)

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	// Create inserts the testimonial. The (session, fromUser) unique index
	// is the authoritative duplicate guard; a constraint violation is
	// surfaced as a conflict so racing duplicate submissions lose cleanly.
	Create(ctx context.Context, testimonial *models.Testimonial) error
	ExistsForSession(ctx context.Context, sessionID, fromUserID uint) (bool, error)
	ListReceivedByUser(ctx context.Context, toUserID uint) ([]models.Testimonial, error)
	// AverageRatingFor recomputes the mean received rating on demand so it
	// always reflects the latest testimonial set. Returns 0 when none.
	AverageRatingFor(ctx context.Context, userID uint) (float64, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository returns a new TestimonialRepository implementation.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already left a testimonial for this session")
		}
		return models.NewInternalError(err)
	}
	// Reload with the views the API returns.
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Preload("Session.Skill").
		First(testimonial, testimonial.ID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *testimonialRepository) ExistsForSession(ctx context.Context, sessionID, fromUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("session_id = ? AND from_user_id = ?", sessionID, fromUserID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *testimonialRepository) ListReceivedByUser(ctx context.Context, toUserID uint) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := r.db.WithContext(ctx).
		Where("to_user_id = ?", toUserID).
		Preload("FromUser").
		Preload("Session.Skill").
		Order("created_at DESC").
		Find(&testimonials).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return testimonials, nil
}

func (r *testimonialRepository) AverageRatingFor(ctx context.Context, userID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("to_user_id = ?", userID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return avg, nil
}
