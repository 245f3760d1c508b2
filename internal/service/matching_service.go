package service

import (
	"context"
	"sort"

	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// Weighting of the match score. Reputation dominates raw XP: a single
// rating point is worth a hundred XP.
const ratingWeight = 100

// MatchCandidate is one recommended teacher for the requesting learner.
type MatchCandidate struct {
	User              models.UserSummary `json:"user"`
	Bio               string             `json:"bio"`
	XP                int                `json:"xp"`
	TeachSkills       []models.UserSkill `json:"teach_skills"`
	Rating            float64            `json:"rating"`
	CompletedSessions int                `json:"completed_sessions"`
	Score             float64            `json:"score"`
}

// MatchingService recommends teachers for a learner's declared LEARN skills.
type MatchingService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

// NewMatchingService returns a new MatchingService.
func NewMatchingService(userRepo repository.UserRepository, skillRepo repository.SkillRepository) *MatchingService {
	return &MatchingService{userRepo: userRepo, skillRepo: skillRepo}
}

// FindMatches returns candidate teachers for everything the user wants to
// learn, best match first. A user with nothing to learn gets an empty list,
// not an error.
func (s *MatchingService) FindMatches(ctx context.Context, userID uint) ([]MatchCandidate, error) {
	learnSkills, err := s.skillRepo.GetUserSkillsByType(ctx, userID, models.SkillTypeLearn)
	if err != nil {
		return nil, err
	}
	if len(learnSkills) == 0 {
		return []MatchCandidate{}, nil
	}

	names := make([]string, 0, len(learnSkills))
	for _, ls := range learnSkills {
		names = append(names, ls.Skill.Name)
	}

	teachers, err := s.userRepo.FindTeachersBySkillNames(ctx, userID, names)
	if err != nil {
		return nil, err
	}

	candidates := make([]MatchCandidate, 0, len(teachers))
	for i := range teachers {
		t := &teachers[i]
		rating := averageRating(t.ReceivedTestimonials)
		candidates = append(candidates, MatchCandidate{
			User:              t.Summary(),
			Bio:               t.Bio,
			XP:                t.XP,
			TeachSkills:       t.Skills,
			Rating:            rating,
			CompletedSessions: len(t.TeachingSessions),
			Score:             float64(t.XP) + rating*ratingWeight,
		})
	}

	// Ties keep the store's read order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}

// averageRating is the mean of the given testimonial ratings, 0 when there
// are none.
func averageRating(testimonials []models.Testimonial) float64 {
	if len(testimonials) == 0 {
		return 0
	}
	sum := 0
	for _, t := range testimonials {
		sum += t.Rating
	}
	return float64(sum) / float64(len(testimonials))
}
