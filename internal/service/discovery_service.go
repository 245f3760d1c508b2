package service

import (
	"context"
	"time"

	"github.com/itsFiz/upskillrr/internal/cache"
	"github.com/itsFiz/upskillrr/internal/config"
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// TopMentor is a discovery-feed mentor card.
type TopMentor struct {
	User              models.UserSummary `json:"user"`
	Bio               string             `json:"bio"`
	XP                int                `json:"xp"`
	Tier              models.Tier        `json:"tier"`
	TeachSkills       []models.UserSkill `json:"teach_skills"`
	Rating            float64            `json:"rating"`
	CompletedSessions int                `json:"completed_sessions"`
}

// RecentActivity is a display-only record of a recently completed session.
type RecentActivity struct {
	TeacherName string `json:"teacher_name"`
	LearnerName string `json:"learner_name"`
	SkillName   string `json:"skill_name"`
	CompletedAt string `json:"completed_at"`
}

// DiscoveryFeed is the aggregate landing-page payload.
type DiscoveryFeed struct {
	TopMentors      []TopMentor            `json:"top_mentors"`
	TrendingSkills  []models.TrendingSkill `json:"trending_skills"`
	RecentActivity  []RecentActivity       `json:"recent_activity"`
	FeaturedMentors []TopMentor            `json:"featured_mentors"`
}

// DiscoveryService aggregates the public landing-page feed.
type DiscoveryService struct {
	userRepo    repository.UserRepository
	skillRepo   repository.SkillRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

// NewDiscoveryService returns a new DiscoveryService.
func NewDiscoveryService(
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	sessionRepo repository.SessionRepository,
	cfg *config.Config,
) *DiscoveryService {
	return &DiscoveryService{
		userRepo:    userRepo,
		skillRepo:   skillRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// GetFeed assembles the discovery feed. The whole payload is cached as one
// unit; XP changes invalidate it so mentor ordering never goes stale.
func (s *DiscoveryService) GetFeed(ctx context.Context) (*DiscoveryFeed, error) {
	var feed DiscoveryFeed
	err := cache.Aside(ctx, cache.DiscoveryKey, &feed, cache.DiscoveryTTL, func() error {
		mentors, err := s.userRepo.TopMentors(ctx, s.cfg.TopMentorLimit)
		if err != nil {
			return err
		}
		feed.TopMentors = make([]TopMentor, 0, len(mentors))
		for i := range mentors {
			m := &mentors[i]
			feed.TopMentors = append(feed.TopMentors, TopMentor{
				User:              m.Summary(),
				Bio:               m.Bio,
				XP:                m.XP,
				Tier:              models.TierForXP(m.XP),
				TeachSkills:       m.Skills,
				Rating:            averageRating(m.ReceivedTestimonials),
				CompletedSessions: len(m.TeachingSessions),
			})
		}

		feed.TrendingSkills, err = s.skillRepo.TrendingByTeachCount(ctx, s.cfg.TrendingSkillLimit)
		if err != nil {
			return err
		}

		recent, err := s.sessionRepo.RecentCompleted(ctx, s.cfg.RecentActivityLimit)
		if err != nil {
			return err
		}
		feed.RecentActivity = make([]RecentActivity, 0, len(recent))
		for _, sess := range recent {
			feed.RecentActivity = append(feed.RecentActivity, RecentActivity{
				TeacherName: sess.Teacher.Name,
				LearnerName: sess.Learner.Name,
				SkillName:   sess.Skill.Name,
				CompletedAt: sess.UpdatedAt.UTC().Format(time.RFC3339),
			})
		}

		// Featured is the head of the top-mentor list, not a separate query.
		n := s.cfg.FeaturedMentorLimit
		if n > len(feed.TopMentors) {
			n = len(feed.TopMentors)
		}
		feed.FeaturedMentors = feed.TopMentors[:n]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &feed, nil
}
