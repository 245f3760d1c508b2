package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/itsFiz/upskillrr/internal/cache"
	"github.com/itsFiz/upskillrr/internal/middleware"
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/notifications"
	"github.com/itsFiz/upskillrr/internal/observability"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// XPFiveStarBonus is granted to the recipient of a maximum-rating testimonial.
const XPFiveStarBonus = 25

// TestimonialService owns testimonial creation and reputation math.
type TestimonialService struct {
	testimonialRepo repository.TestimonialRepository
	sessionRepo     repository.SessionRepository
	userRepo        repository.UserRepository
	notifier        *notifications.Notifier
}

// NewTestimonialService returns a new TestimonialService.
func NewTestimonialService(
	testimonialRepo repository.TestimonialRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *TestimonialService {
	return &TestimonialService{
		testimonialRepo: testimonialRepo,
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// CreateTestimonialInput carries a new testimonial submission.
type CreateTestimonialInput struct {
	SessionID  uint
	FromUserID uint
	ToUserID   uint
	Message    string
	Rating     int
}

// Create validates and stores a testimonial for a completed session. The
// author must be a participant, may only review each session once, and the
// declared recipient must be the other participant. A maximum rating grants
// the recipient bonus XP.
func (s *TestimonialService) Create(ctx context.Context, in CreateTestimonialInput) (*models.Testimonial, error) {
	if !models.ValidRating(in.Rating) {
		return nil, models.NewValidationError("Rating must be an integer between " +
			strconv.Itoa(models.RatingMin) + " and " + strconv.Itoa(models.RatingMax))
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, models.NewValidationError("Testimonial message is required")
	}
	if in.ToUserID == 0 {
		return nil, models.NewValidationError("to_user_id is required")
	}

	session, err := s.sessionRepo.GetByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionCompleted {
		return nil, models.NewValidationError("Testimonials can only be left for completed sessions")
	}
	if !session.Participant(in.FromUserID) {
		return nil, models.NewForbiddenError("You are not a participant of this session")
	}
	// The recipient is never a free choice: a testimonial always targets
	// the other participant, and the bonus XP goes with it.
	if in.ToUserID != session.OtherParty(in.FromUserID) {
		return nil, models.NewValidationError("to_user_id must be the other session participant")
	}

	// Fast-path duplicate check; the unique index catches the race.
	exists, err := s.testimonialRepo.ExistsForSession(ctx, session.ID, in.FromUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("You have already left a testimonial for this session")
	}

	testimonial := &models.Testimonial{
		SessionID:  session.ID,
		FromUserID: in.FromUserID,
		ToUserID:   session.OtherParty(in.FromUserID),
		Message:    strings.TrimSpace(in.Message),
		Rating:     in.Rating,
	}
	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return nil, err
	}
	observability.TestimonialsCreated.WithLabelValues(strconv.Itoa(in.Rating)).Inc()

	// The recipient's cached profile and the ranking snapshots carry the
	// average rating, so every new testimonial drops them, not just the
	// five-star ones that move XP.
	if recipient, err := s.userRepo.GetByID(ctx, testimonial.ToUserID); err == nil {
		cache.InvalidateProfile(ctx, recipient.Name)
	} else {
		middleware.Logger.WarnContext(ctx, "profile cache invalidation skipped",
			slog.Uint64("user_id", uint64(testimonial.ToUserID)), slog.Any("error", err))
	}
	cache.InvalidateRankings(ctx)

	if in.Rating == models.RatingBonusThreshold {
		if err := s.userRepo.IncrementXP(ctx, testimonial.ToUserID, XPFiveStarBonus); err != nil {
			middleware.Logger.ErrorContext(ctx, "five-star bonus XP failed",
				slog.Uint64("testimonial_id", uint64(testimonial.ID)), slog.Any("error", err))
		} else {
			observability.XPAwarded.WithLabelValues("five_star_testimonial").Add(XPFiveStarBonus)
		}
	}

	_ = s.notifier.PublishUser(ctx, testimonial.ToUserID, notifications.EventTestimonial, map[string]any{
		"testimonial_id": testimonial.ID,
		"rating":         testimonial.Rating,
	})

	return testimonial, nil
}

// ListReceived returns the testimonials a user has received, newest first.
func (s *TestimonialService) ListReceived(ctx context.Context, userID uint) ([]models.Testimonial, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.testimonialRepo.ListReceivedByUser(ctx, userID)
}

// AverageRating returns the user's mean received rating, 0 when unrated.
func (s *TestimonialService) AverageRating(ctx context.Context, userID uint) (float64, error) {
	return s.testimonialRepo.AverageRatingFor(ctx, userID)
}
