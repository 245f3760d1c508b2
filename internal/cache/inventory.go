package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	ProfileKeyPrefix = "profile:%s"
	DiscoveryKey     = "discovery:feed"
	LeaderboardKey   = "leaderboard:top"
)

const (
	UserTTL        = 5 * time.Minute
	ProfileTTL     = 5 * time.Minute
	DiscoveryTTL   = 2 * time.Minute
	LeaderboardTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(name string) string {
	return fmt.Sprintf(ProfileKeyPrefix, name)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateProfile drops the cached public profile for a display name.
// The profile carries the average rating and bio, so testimonial and
// profile writes must drop it rather than wait out the TTL.
func InvalidateProfile(ctx context.Context, name string) {
	Invalidate(ctx, ProfileKey(strings.ToLower(name)))
}

// InvalidateRankings drops the leaderboard and discovery snapshots. Called
// whenever XP moves so ranks never lag behind an award.
func InvalidateRankings(ctx context.Context) {
	Invalidate(ctx, LeaderboardKey)
	Invalidate(ctx, DiscoveryKey)
}
