package service

import (
	"context"
	"errors"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"
)

// Function-field stubs so each test overrides only the calls it cares
// about. Unstubbed calls fail loudly instead of returning zero values.

var errUnexpectedCall = errors.New("unexpected repository call")

type userRepoStub struct {
	GetByIDFn                  func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFn               func(ctx context.Context, email string) (*models.User, error)
	GetByNameFn                func(ctx context.Context, name string) (*models.User, error)
	CreateFn                   func(ctx context.Context, user *models.User) error
	UpdateFn                   func(ctx context.Context, user *models.User) error
	IncrementXPFn              func(ctx context.Context, id uint, delta int) error
	ListByXPDescFn             func(ctx context.Context) ([]models.User, error)
	FindTeachersBySkillNamesFn func(ctx context.Context, excludeUserID uint, names []string) ([]models.User, error)
	TopMentorsFn               func(ctx context.Context, limit int) ([]models.User, error)
	GetWithStatsFn             func(ctx context.Context, id uint) (*models.User, error)
	GetProfileByNameFn         func(ctx context.Context, name string) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.GetByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.GetByEmailFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetByEmailFn(ctx, email)
}

func (s *userRepoStub) GetByName(ctx context.Context, name string) (*models.User, error) {
	if s.GetByNameFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetByNameFn(ctx, name)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.CreateFn == nil {
		return errUnexpectedCall
	}
	return s.CreateFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.UpdateFn == nil {
		return errUnexpectedCall
	}
	return s.UpdateFn(ctx, user)
}

func (s *userRepoStub) IncrementXP(ctx context.Context, id uint, delta int) error {
	if s.IncrementXPFn == nil {
		return errUnexpectedCall
	}
	return s.IncrementXPFn(ctx, id, delta)
}

func (s *userRepoStub) ListByXPDesc(ctx context.Context) ([]models.User, error) {
	if s.ListByXPDescFn == nil {
		return nil, errUnexpectedCall
	}
	return s.ListByXPDescFn(ctx)
}

func (s *userRepoStub) FindTeachersBySkillNames(ctx context.Context, excludeUserID uint, names []string) ([]models.User, error) {
	if s.FindTeachersBySkillNamesFn == nil {
		return nil, errUnexpectedCall
	}
	return s.FindTeachersBySkillNamesFn(ctx, excludeUserID, names)
}

func (s *userRepoStub) TopMentors(ctx context.Context, limit int) ([]models.User, error) {
	if s.TopMentorsFn == nil {
		return nil, errUnexpectedCall
	}
	return s.TopMentorsFn(ctx, limit)
}

func (s *userRepoStub) GetWithStats(ctx context.Context, id uint) (*models.User, error) {
	if s.GetWithStatsFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetWithStatsFn(ctx, id)
}

func (s *userRepoStub) GetProfileByName(ctx context.Context, name string) (*models.User, error) {
	if s.GetProfileByNameFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetProfileByNameFn(ctx, name)
}

type skillRepoStub struct {
	FindOrCreateFn         func(ctx context.Context, name, category string) (*models.Skill, error)
	GetByNameFn            func(ctx context.Context, name string) (*models.Skill, error)
	CreateAssociationFn    func(ctx context.Context, assoc *models.UserSkill) error
	GetAssociationFn       func(ctx context.Context, id uint) (*models.UserSkill, error)
	DeleteAssociationFn    func(ctx context.Context, id uint) error
	GetUserSkillsFn        func(ctx context.Context, userID uint) ([]models.UserSkill, error)
	GetUserSkillsByTypeFn  func(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error)
	TrendingByTeachCountFn func(ctx context.Context, limit int) ([]models.TrendingSkill, error)
}

func (s *skillRepoStub) FindOrCreate(ctx context.Context, name, category string) (*models.Skill, error) {
	if s.FindOrCreateFn == nil {
		return nil, errUnexpectedCall
	}
	return s.FindOrCreateFn(ctx, name, category)
}

func (s *skillRepoStub) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	if s.GetByNameFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetByNameFn(ctx, name)
}

func (s *skillRepoStub) CreateAssociation(ctx context.Context, assoc *models.UserSkill) error {
	if s.CreateAssociationFn == nil {
		return errUnexpectedCall
	}
	return s.CreateAssociationFn(ctx, assoc)
}

func (s *skillRepoStub) GetAssociation(ctx context.Context, id uint) (*models.UserSkill, error) {
	if s.GetAssociationFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetAssociationFn(ctx, id)
}

func (s *skillRepoStub) DeleteAssociation(ctx context.Context, id uint) error {
	if s.DeleteAssociationFn == nil {
		return errUnexpectedCall
	}
	return s.DeleteAssociationFn(ctx, id)
}

func (s *skillRepoStub) GetUserSkills(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	if s.GetUserSkillsFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetUserSkillsFn(ctx, userID)
}

func (s *skillRepoStub) GetUserSkillsByType(ctx context.Context, userID uint, skillType models.SkillType) ([]models.UserSkill, error) {
	if s.GetUserSkillsByTypeFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetUserSkillsByTypeFn(ctx, userID, skillType)
}

func (s *skillRepoStub) TrendingByTeachCount(ctx context.Context, limit int) ([]models.TrendingSkill, error) {
	if s.TrendingByTeachCountFn == nil {
		return nil, errUnexpectedCall
	}
	return s.TrendingByTeachCountFn(ctx, limit)
}

type sessionRepoStub struct {
	CreateFn                       func(ctx context.Context, session *models.Session) error
	GetByIDFn                      func(ctx context.Context, id uint) (*models.Session, error)
	UpdateStatusFn                 func(ctx context.Context, id uint, status models.SessionStatus) error
	ListByTeacherFn                func(ctx context.Context, teacherID uint) ([]models.Session, error)
	ListByLearnerFn                func(ctx context.Context, learnerID uint) ([]models.Session, error)
	RecentCompletedFn              func(ctx context.Context, limit int) ([]models.Session, error)
	CountCompletedByLearnerSinceFn func(ctx context.Context, learnerID uint, from, to time.Time) (int64, error)
}

func (s *sessionRepoStub) Create(ctx context.Context, session *models.Session) error {
	if s.CreateFn == nil {
		return errUnexpectedCall
	}
	return s.CreateFn(ctx, session)
}

func (s *sessionRepoStub) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	if s.GetByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetByIDFn(ctx, id)
}

func (s *sessionRepoStub) UpdateStatus(ctx context.Context, id uint, status models.SessionStatus) error {
	if s.UpdateStatusFn == nil {
		return errUnexpectedCall
	}
	return s.UpdateStatusFn(ctx, id, status)
}

func (s *sessionRepoStub) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Session, error) {
	if s.ListByTeacherFn == nil {
		return nil, errUnexpectedCall
	}
	return s.ListByTeacherFn(ctx, teacherID)
}

func (s *sessionRepoStub) ListByLearner(ctx context.Context, learnerID uint) ([]models.Session, error) {
	if s.ListByLearnerFn == nil {
		return nil, errUnexpectedCall
	}
	return s.ListByLearnerFn(ctx, learnerID)
}

func (s *sessionRepoStub) RecentCompleted(ctx context.Context, limit int) ([]models.Session, error) {
	if s.RecentCompletedFn == nil {
		return nil, errUnexpectedCall
	}
	return s.RecentCompletedFn(ctx, limit)
}

func (s *sessionRepoStub) CountCompletedByLearnerSince(ctx context.Context, learnerID uint, from, to time.Time) (int64, error) {
	if s.CountCompletedByLearnerSinceFn == nil {
		return 0, errUnexpectedCall
	}
	return s.CountCompletedByLearnerSinceFn(ctx, learnerID, from, to)
}

type testimonialRepoStub struct {
	CreateFn             func(ctx context.Context, testimonial *models.Testimonial) error
	ExistsForSessionFn   func(ctx context.Context, sessionID, fromUserID uint) (bool, error)
	ListReceivedByUserFn func(ctx context.Context, toUserID uint) ([]models.Testimonial, error)
	AverageRatingForFn   func(ctx context.Context, userID uint) (float64, error)
}

func (s *testimonialRepoStub) Create(ctx context.Context, testimonial *models.Testimonial) error {
	if s.CreateFn == nil {
		return errUnexpectedCall
	}
	return s.CreateFn(ctx, testimonial)
}

func (s *testimonialRepoStub) ExistsForSession(ctx context.Context, sessionID, fromUserID uint) (bool, error) {
	if s.ExistsForSessionFn == nil {
		return false, errUnexpectedCall
	}
	return s.ExistsForSessionFn(ctx, sessionID, fromUserID)
}

func (s *testimonialRepoStub) ListReceivedByUser(ctx context.Context, toUserID uint) ([]models.Testimonial, error) {
	if s.ListReceivedByUserFn == nil {
		return nil, errUnexpectedCall
	}
	return s.ListReceivedByUserFn(ctx, toUserID)
}

func (s *testimonialRepoStub) AverageRatingFor(ctx context.Context, userID uint) (float64, error) {
	if s.AverageRatingForFn == nil {
		return 0, errUnexpectedCall
	}
	return s.AverageRatingForFn(ctx, userID)
}

type goalRepoStub struct {
	UpsertFn     func(ctx context.Context, goal *models.WeeklyGoal) error
	GetForWeekFn func(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyGoal, error)
}

func (s *goalRepoStub) Upsert(ctx context.Context, goal *models.WeeklyGoal) error {
	if s.UpsertFn == nil {
		return errUnexpectedCall
	}
	return s.UpsertFn(ctx, goal)
}

func (s *goalRepoStub) GetForWeek(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklyGoal, error) {
	if s.GetForWeekFn == nil {
		return nil, errUnexpectedCall
	}
	return s.GetForWeekFn(ctx, userID, weekStart)
}

// fakeMailer records every send and can be told to fail.
type fakeMailer struct {
	failWith      error
	requests      []string
	confirmations []string
	cancellations []string
}

func (m *fakeMailer) SendSessionRequest(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time, message string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.requests = append(m.requests, to)
	return nil
}

func (m *fakeMailer) SendSessionConfirmation(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.confirmations = append(m.confirmations, to)
	return nil
}

func (m *fakeMailer) SendSessionCancellation(ctx context.Context, to, recipientName, cancellerName, skillName string, date time.Time) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.cancellations = append(m.cancellations, to)
	return nil
}

func appCode(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
