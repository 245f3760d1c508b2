// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedPassword is the password every seeded user can sign in with.
const SeedPassword = "UpskillrrDemo1!"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
	// bcrypt of SeedPassword, hashed once and shared across users
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	return &Factory{
		db:           db,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Password:  f.passwordHash,
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		XP:        gofakeit.Number(0, 1500),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureSkill upserts a skill by unique name.
func (f *Factory) EnsureSkill(name, category string) (*models.Skill, error) {
	skill := models.Skill{Name: name, Category: category}
	err := f.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&skill).Error
	if err != nil {
		return nil, err
	}
	var out models.Skill
	if err := f.db.Where("name = ?", name).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Declare attaches a skill to a user, ignoring duplicates so seeding is
// re-runnable.
func (f *Factory) Declare(user *models.User, skill *models.Skill, skillType models.SkillType, level models.SkillLevel) error {
	assoc := models.UserSkill{
		UserID:  user.ID,
		SkillID: skill.ID,
		Type:    skillType,
		Level:   level,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&assoc).Error
}

// CreateSession persists a session between two users with the given status.
// Completed sessions land on a past date.
func (f *Factory) CreateSession(teacher, learner *models.User, skill *models.Skill, status models.SessionStatus) (*models.Session, error) {
	daysOff := f.rng.Intn(14) + 1
	date := time.Now().AddDate(0, 0, daysOff)
	if status == models.SessionCompleted || status == models.SessionCancelled {
		date = time.Now().AddDate(0, 0, -daysOff)
	}

	session := &models.Session{
		TeacherID: teacher.ID,
		LearnerID: learner.ID,
		SkillID:   skill.ID,
		Date:      date,
		Status:    status,
	}
	if err := f.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// CreateTestimonial persists a testimonial from the learner about the
// teacher of a completed session.
func (f *Factory) CreateTestimonial(session *models.Session, rating int) (*models.Testimonial, error) {
	testimonial := &models.Testimonial{
		SessionID:  session.ID,
		FromUserID: session.LearnerID,
		ToUserID:   session.TeacherID,
		Message:    gofakeit.Sentence(12),
		Rating:     rating,
	}
	err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(testimonial).Error
	if err != nil {
		return nil, err
	}
	return testimonial, nil
}
