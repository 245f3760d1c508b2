package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/itsFiz/upskillrr/internal/middleware"
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/notifications"
	"github.com/itsFiz/upskillrr/internal/observability"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// XP awarded when a session reaches COMPLETED.
const (
	XPTeacherCompleted = 100
	XPLearnerCompleted = 50
)

// SessionService owns the mentoring-session lifecycle.
type SessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	skillRepo   repository.SkillRepository
	mailer      notifications.Mailer
	notifier    *notifications.Notifier
}

// NewSessionService returns a new SessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	mailer notifications.Mailer,
	notifier *notifications.Notifier,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		skillRepo:   skillRepo,
		mailer:      mailer,
		notifier:    notifier,
	}
}

// CreateSessionInput carries a learner's booking request. SkillName is
// optional; when empty the skill is inferred from what the teacher offers
// and the learner wants.
type CreateSessionInput struct {
	LearnerID uint
	TeacherID uint
	SkillName string
	Date      time.Time
	Message   string
}

// UserSessions groups a user's sessions by their role in them.
type UserSessions struct {
	Teaching []models.Session `json:"teaching"`
	Learning []models.Session `json:"learning"`
}

// Create books a new PENDING session and notifies the teacher. The booking
// is committed before the notification goes out; a failed notification comes
// back as a dependency error alongside the created session, never as a
// rollback.
func (s *SessionService) Create(ctx context.Context, in CreateSessionInput) (*models.Session, error) {
	if in.TeacherID == in.LearnerID {
		return nil, models.NewValidationError("You cannot book a session with yourself")
	}
	if in.Date.IsZero() {
		return nil, models.NewValidationError("Session date is required")
	}

	teacher, err := s.userRepo.GetByID(ctx, in.TeacherID)
	if err != nil {
		return nil, err
	}
	learner, err := s.userRepo.GetByID(ctx, in.LearnerID)
	if err != nil {
		return nil, err
	}

	skill, err := s.resolveSkill(ctx, teacher.ID, learner.ID, in.SkillName)
	if err != nil {
		return nil, err
	}

	if teacher.Email == "" {
		return nil, models.NewMissingResourceError("Teacher has no reachable email address")
	}

	session := &models.Session{
		TeacherID: teacher.ID,
		LearnerID: learner.ID,
		SkillID:   skill.ID,
		Date:      in.Date,
		Status:    models.SessionPending,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	observability.SessionTransitions.WithLabelValues(string(models.SessionPending)).Inc()

	_ = s.notifier.PublishUser(ctx, teacher.ID, notifications.EventSessionRequested, map[string]any{
		"session_id": session.ID,
		"learner":    learner.Name,
		"skill":      skill.Name,
	})

	if err := s.mailer.SendSessionRequest(ctx, teacher.Email, teacher.Name, learner.Name, skill.Name, in.Date, in.Message); err != nil {
		middleware.Logger.ErrorContext(ctx, "session request email failed",
			slog.Uint64("session_id", uint64(session.ID)), slog.Any("error", err))
		return session, models.NewDependencyError("Session was booked but the teacher could not be notified", err)
	}

	return session, nil
}

// resolveSkill picks the session's skill: the explicitly named one, or the
// first skill the teacher offers that the learner wants.
func (s *SessionService) resolveSkill(ctx context.Context, teacherID, learnerID uint, skillName string) (*models.Skill, error) {
	if skillName != "" {
		skill, err := s.skillRepo.GetByName(ctx, skillName)
		if err != nil {
			return nil, err
		}
		if skill == nil {
			return nil, models.NewValidationError("No matching skill found for this session")
		}
		return skill, nil
	}

	teaches, err := s.skillRepo.GetUserSkillsByType(ctx, teacherID, models.SkillTypeTeach)
	if err != nil {
		return nil, err
	}
	wants, err := s.skillRepo.GetUserSkillsByType(ctx, learnerID, models.SkillTypeLearn)
	if err != nil {
		return nil, err
	}

	wanted := make(map[uint]bool, len(wants))
	for _, w := range wants {
		wanted[w.SkillID] = true
	}
	for i := range teaches {
		if wanted[teaches[i].SkillID] {
			return &teaches[i].Skill, nil
		}
	}
	return nil, models.NewValidationError("No matching skill found for this session")
}

// Transition moves a session to the target lifecycle state on behalf of one
// of its participants. Side effects (XP, notifications) are each gated on
// the previous status individually, so re-applying a state is an idempotent
// no-op for that effect.
func (s *SessionService) Transition(ctx context.Context, userID, sessionID uint, target models.SessionStatus) (*models.Session, error) {
	if !models.ValidStatus(target) {
		return nil, models.NewValidationError("Invalid session status")
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Participant(userID) {
		return nil, models.NewForbiddenError("You are not a participant of this session")
	}

	prev := session.Status
	if !models.CanTransition(prev, target) {
		return nil, models.NewValidationError("Session cannot move from " + string(prev) + " to " + string(target))
	}

	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, target); err != nil {
		return nil, err
	}
	session.Status = target
	observability.SessionTransitions.WithLabelValues(string(target)).Inc()

	var notifyErr error
	switch target {
	case models.SessionConfirmed:
		if prev != models.SessionConfirmed {
			notifyErr = s.notifyConfirmed(ctx, session)
		}
	case models.SessionCancelled:
		if prev != models.SessionCancelled {
			notifyErr = s.notifyCancelled(ctx, session, userID)
		}
	case models.SessionCompleted:
		if prev != models.SessionCompleted {
			s.awardCompletionXP(ctx, session)
		}
	}

	if notifyErr != nil {
		middleware.Logger.ErrorContext(ctx, "session notification failed",
			slog.Uint64("session_id", uint64(session.ID)),
			slog.String("status", string(target)),
			slog.Any("error", notifyErr))
		return session, models.NewDependencyError("Session was updated but a participant could not be notified", notifyErr)
	}
	return session, nil
}

func (s *SessionService) notifyConfirmed(ctx context.Context, session *models.Session) error {
	_ = s.notifier.PublishUser(ctx, session.LearnerID, notifications.EventSessionConfirmed, map[string]any{
		"session_id": session.ID,
		"skill":      session.Skill.Name,
	})

	// Older rows may predate the preloaded associations; skip the email
	// rather than send a half-filled one.
	if session.Learner.Email == "" || session.Teacher.Name == "" || session.Skill.Name == "" {
		middleware.Logger.WarnContext(ctx, "skipping confirmation email, incomplete session data",
			slog.Uint64("session_id", uint64(session.ID)))
		return nil
	}
	return s.mailer.SendSessionConfirmation(ctx, session.Learner.Email, session.Teacher.Name, session.Learner.Name, session.Skill.Name, session.Date)
}

func (s *SessionService) notifyCancelled(ctx context.Context, session *models.Session, cancelledBy uint) error {
	otherID := session.OtherParty(cancelledBy)
	_ = s.notifier.PublishUser(ctx, otherID, notifications.EventSessionCancelled, map[string]any{
		"session_id": session.ID,
		"skill":      session.Skill.Name,
	})

	recipient, canceller := &session.Teacher, &session.Learner
	if otherID == session.LearnerID {
		recipient, canceller = &session.Learner, &session.Teacher
	}
	if recipient.Email == "" {
		middleware.Logger.WarnContext(ctx, "skipping cancellation email, recipient has no address",
			slog.Uint64("session_id", uint64(session.ID)))
		return nil
	}
	return s.mailer.SendSessionCancellation(ctx, recipient.Email, recipient.Name, canceller.Name, session.Skill.Name, session.Date)
}

// awardCompletionXP grants both participants their XP as two independent
// increments. One failing award must not block the other; failures are
// logged and surfaced through metrics only.
func (s *SessionService) awardCompletionXP(ctx context.Context, session *models.Session) {
	if err := s.userRepo.IncrementXP(ctx, session.TeacherID, XPTeacherCompleted); err != nil {
		middleware.Logger.ErrorContext(ctx, "teacher XP award failed",
			slog.Uint64("session_id", uint64(session.ID)), slog.Any("error", err))
	} else {
		observability.XPAwarded.WithLabelValues("session_taught").Add(XPTeacherCompleted)
		_ = s.notifier.PublishUser(ctx, session.TeacherID, notifications.EventXPAwarded, map[string]any{
			"amount": XPTeacherCompleted,
			"reason": "session_taught",
		})
	}

	if err := s.userRepo.IncrementXP(ctx, session.LearnerID, XPLearnerCompleted); err != nil {
		middleware.Logger.ErrorContext(ctx, "learner XP award failed",
			slog.Uint64("session_id", uint64(session.ID)), slog.Any("error", err))
	} else {
		observability.XPAwarded.WithLabelValues("session_learned").Add(XPLearnerCompleted)
		_ = s.notifier.PublishUser(ctx, session.LearnerID, notifications.EventXPAwarded, map[string]any{
			"amount": XPLearnerCompleted,
			"reason": "session_learned",
		})
	}

	_ = s.notifier.PublishUser(ctx, session.OtherParty(session.LearnerID), notifications.EventSessionCompleted, map[string]any{
		"session_id": session.ID,
	})
}

// GetUserSessions returns the user's sessions grouped by role, newest first.
func (s *SessionService) GetUserSessions(ctx context.Context, userID uint) (*UserSessions, error) {
	teaching, err := s.sessionRepo.ListByTeacher(ctx, userID)
	if err != nil {
		return nil, err
	}
	learning, err := s.sessionRepo.ListByLearner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserSessions{Teaching: teaching, Learning: learning}, nil
}
