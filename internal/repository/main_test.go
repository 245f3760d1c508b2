package repository

import (
	"testing"

	"github.com/itsFiz/upskillrr/internal/database"
	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, xp int) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "pw", XP: xp}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestSkill(t *testing.T, db *gorm.DB, name, category string) *models.Skill {
	t.Helper()
	skill := &models.Skill{Name: name, Category: category}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("create skill %s: %v", name, err)
	}
	return skill
}
