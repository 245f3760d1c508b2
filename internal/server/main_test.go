package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itsFiz/upskillrr/internal/config"
	"github.com/itsFiz/upskillrr/internal/database"
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/notifications"
	"github.com/itsFiz/upskillrr/internal/repository"
	"github.com/itsFiz/upskillrr/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory database, skipping the
// Prometheus middleware so repeated construction never re-registers
// collectors. Emails go through the log-only mailer.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:           "unit-test-secret-do-not-reuse",
		TopMentorLimit:      6,
		TrendingSkillLimit:  5,
		RecentActivityLimit: 10,
		FeaturedMentorLimit: 3,
	}

	srv := &Server{
		config:          cfg,
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		skillRepo:       repository.NewSkillRepository(db),
		sessionRepo:     repository.NewSessionRepository(db),
		testimonialRepo: repository.NewTestimonialRepository(db),
		goalRepo:        repository.NewGoalRepository(db),
		mailer:          notifications.NewMailer(cfg),
	}
	srv.skillService = service.NewSkillService(srv.skillRepo)
	srv.matchingService = service.NewMatchingService(srv.userRepo, srv.skillRepo)
	srv.sessionService = service.NewSessionService(
		srv.sessionRepo, srv.userRepo, srv.skillRepo, srv.mailer, srv.notifier)
	srv.testimonialService = service.NewTestimonialService(
		srv.testimonialRepo, srv.sessionRepo, srv.userRepo, srv.notifier)
	srv.leaderboardService = service.NewLeaderboardService(srv.userRepo)
	srv.discoveryService = service.NewDiscoveryService(
		srv.userRepo, srv.skillRepo, srv.sessionRepo, cfg)
	srv.goalService = service.NewGoalService(srv.goalRepo, srv.sessionRepo)
	srv.userService = service.NewUserService(srv.userRepo)

	return srv
}

// newTestApp mounts the API routes with a stand-in for AuthRequired that
// injects the given user ID.
func newTestApp(srv *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("userID", userID)
		}
		return c.Next()
	})

	app.Post("/api/auth/signup", srv.Signup)
	app.Post("/api/auth/login", srv.Login)
	app.Post("/api/auth/logout", srv.Logout)
	app.Get("/api/discovery", srv.GetDiscoveryFeed)
	app.Get("/api/profile/:username", srv.GetProfileByName)

	app.Get("/api/users/me", srv.GetMyProfile)
	app.Put("/api/users/me", srv.UpdateMyProfile)
	app.Get("/api/users/me/stats", srv.GetMyStats)
	app.Get("/api/skills", srv.GetMySkills)
	app.Post("/api/skills", srv.DeclareSkill)
	app.Delete("/api/skills/:id", srv.RemoveSkill)
	app.Get("/api/matching", srv.GetMatches)
	app.Get("/api/sessions", srv.GetMySessions)
	app.Post("/api/sessions", srv.CreateSession)
	app.Patch("/api/sessions/:id", srv.UpdateSessionStatus)
	app.Get("/api/testimonials", srv.GetTestimonials)
	app.Post("/api/testimonials", srv.CreateTestimonial)
	app.Get("/api/leaderboard", srv.GetLeaderboard)
	app.Get("/api/goals", srv.GetWeeklyGoal)
	app.Post("/api/goals", srv.SetWeeklyGoal)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var parsed map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("unmarshal response %q: %v", raw, err)
		}
	}
	return resp, parsed
}

// registerUser writes a user straight into the store with a known password.
func registerUser(t *testing.T, srv *Server, name, email string, xp int) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("CorrectHorse9!Battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, Password: string(hash), XP: xp}
	if err := srv.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func declareSkill(t *testing.T, srv *Server, userID uint, name, category string, skillType models.SkillType, level models.SkillLevel) {
	t.Helper()
	skill := models.Skill{Name: name, Category: category}
	if err := srv.db.Where("name = ?", name).FirstOrCreate(&skill).Error; err != nil {
		t.Fatalf("skill %s: %v", name, err)
	}
	assoc := models.UserSkill{UserID: userID, SkillID: skill.ID, Type: skillType, Level: level}
	if err := srv.db.Create(&assoc).Error; err != nil {
		t.Fatalf("declare %s: %v", name, err)
	}
}
