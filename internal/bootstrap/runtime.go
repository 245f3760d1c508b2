// Package bootstrap wires runtime dependencies for the command binaries.
package bootstrap

import (
	"fmt"

	"github.com/itsFiz/upskillrr/internal/cache"
	"github.com/itsFiz/upskillrr/internal/config"
	"github.com/itsFiz/upskillrr/internal/database"
	"github.com/itsFiz/upskillrr/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedFixtures bool
}

// InitRuntime connects to DB and Redis and optionally seeds the demo
// fixtures. Redis being unreachable is not fatal; caching and rate limiting
// degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedFixtures {
		if _, err := seed.NewSeeder(db).SeedFixtures(); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo fixtures: %w", err)
		}
	}

	return db, r, nil
}
