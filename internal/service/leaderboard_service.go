package service

import (
	"context"

	"github.com/itsFiz/upskillrr/internal/cache"
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// LeaderboardLimit caps how many ranked rows the leaderboard returns.
const LeaderboardLimit = 50

// LeaderboardEntry is one ranked row of the global XP leaderboard.
type LeaderboardEntry struct {
	Rank              int                `json:"rank"`
	User              models.UserSummary `json:"user"`
	XP                int                `json:"xp"`
	Tier              models.Tier        `json:"tier"`
	Rating            float64            `json:"rating"`
	CompletedSessions int                `json:"completed_sessions"`
}

// Leaderboard is the leaderboard view for one requesting user: the top
// entries plus the requester's own rank, which may lie outside the visible
// window.
type Leaderboard struct {
	Entries         []LeaderboardEntry `json:"entries"`
	CurrentUserRank int                `json:"current_user_rank"`
}

// LeaderboardService ranks all users by XP.
type LeaderboardService struct {
	userRepo repository.UserRepository
}

// NewLeaderboardService returns a new LeaderboardService.
func NewLeaderboardService(userRepo repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo}
}

// GetLeaderboard returns the top-ranked users and the requester's true rank.
// Ranks are 1-based over the full user set, even though only the head of the
// list is returned.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, currentUserID uint) (*Leaderboard, error) {
	var entries []LeaderboardEntry
	err := cache.Aside(ctx, cache.LeaderboardKey, &entries, cache.LeaderboardTTL, func() error {
		users, err := s.userRepo.ListByXPDesc(ctx)
		if err != nil {
			return err
		}
		entries = make([]LeaderboardEntry, 0, len(users))
		for i := range users {
			u := &users[i]
			entries = append(entries, LeaderboardEntry{
				Rank:              i + 1,
				User:              u.Summary(),
				XP:                u.XP,
				Tier:              models.TierForXP(u.XP),
				Rating:            averageRating(u.ReceivedTestimonials),
				CompletedSessions: len(u.TeachingSessions),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	currentRank := 0
	for _, e := range entries {
		if e.User.ID == currentUserID {
			currentRank = e.Rank
			break
		}
	}

	if len(entries) > LeaderboardLimit {
		entries = entries[:LeaderboardLimit]
	}
	return &Leaderboard{Entries: entries, CurrentUserRank: currentRank}, nil
}
