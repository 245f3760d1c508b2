package service

import (
	"context"
	"strings"

	"github.com/itsFiz/upskillrr/internal/cache"
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// UserService provides profile and stats business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput carries a partial profile update; empty fields are
// left untouched.
type UpdateProfileInput struct {
	UserID    uint
	Name      string
	Bio       string
	AvatarURL string
}

// UserStats summarizes one user's activity.
type UserStats struct {
	XP               int         `json:"xp"`
	TeachingSessions int         `json:"teaching_sessions"`
	LearningSessions int         `json:"learning_sessions"`
	AverageRating    float64     `json:"average_rating"`
	Tier             models.Tier `json:"tier"`
	TierProgress     float64     `json:"tier_progress"`
}

// Profile is the public profile view served by name lookup.
type Profile struct {
	User         models.UserSummary   `json:"user"`
	Bio          string               `json:"bio"`
	XP           int                  `json:"xp"`
	Tier         models.Tier          `json:"tier"`
	TierProgress float64              `json:"tier_progress"`
	TeachSkills  []models.UserSkill   `json:"teach_skills"`
	LearnSkills  []models.UserSkill   `json:"learn_skills"`
	Stats        UserStats            `json:"stats"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

// GetUserByID returns the user with the given id.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update to the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	oldName := user.Name

	const maxBioLen = 500
	const maxNameLen = 50

	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 50 characters)")
		}
		user.Name = in.Name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// The public profile is keyed by display name; drop both keys when the
	// name changed so neither the old nor the new name serves stale data.
	cache.InvalidateProfile(ctx, oldName)
	if user.Name != oldName {
		cache.InvalidateProfile(ctx, user.Name)
	}
	return user, nil
}

// GetStats returns the activity summary for a user.
func (s *UserService) GetStats(ctx context.Context, userID uint) (*UserStats, error) {
	user, err := s.userRepo.GetWithStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := statsFor(user)
	return &stats, nil
}

// GetProfileByName resolves a public profile by display name,
// case-insensitively.
func (s *UserService) GetProfileByName(ctx context.Context, name string) (*Profile, error) {
	var profile Profile
	key := cache.ProfileKey(strings.ToLower(name))
	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetProfileByName(ctx, name)
		if err != nil {
			return err
		}

		teach := make([]models.UserSkill, 0)
		learn := make([]models.UserSkill, 0)
		for _, skill := range user.Skills {
			switch skill.Type {
			case models.SkillTypeTeach:
				teach = append(teach, skill)
			case models.SkillTypeLearn:
				learn = append(learn, skill)
			}
		}

		profile = Profile{
			User:         user.Summary(),
			Bio:          user.Bio,
			XP:           user.XP,
			Tier:         models.TierForXP(user.XP),
			TierProgress: models.TierProgress(user.XP),
			TeachSkills:  teach,
			LearnSkills:  learn,
			Stats:        statsFor(user),
			Testimonials: user.ReceivedTestimonials,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func statsFor(user *models.User) UserStats {
	return UserStats{
		XP:               user.XP,
		TeachingSessions: len(user.TeachingSessions),
		LearningSessions: len(user.LearningSessions),
		AverageRating:    averageRating(user.ReceivedTestimonials),
		Tier:             models.TierForXP(user.XP),
		TierProgress:     models.TierProgress(user.XP),
	}
}
