package seed

import (
	"fmt"
	"log"

	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder for the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"testimonials", "weekly_goals", "sessions", "user_skills", "skills", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// fixtureUser is one of the well-known demo accounts.
type fixtureUser struct {
	name  string
	email string
	bio   string
	xp    int
	teach string
	learn string
}

var fixtureUsers = []fixtureUser{
	{"Alice Johnson", "alice@test.com", "Passionate about teaching programming and learning design", 1250, "JavaScript", "React"},
	{"Bob Smith", "bob@test.com", "Experienced developer who loves mentoring beginners", 2100, "React", "Node.js"},
	{"Carol Davis", "carol@test.com", "Design enthusiast and creative problem solver", 800, "UI/UX Design", "JavaScript"},
	{"Dave Wilson", "dave@test.com", "Full-stack developer with a passion for clean code", 1800, "Node.js", "UI/UX Design"},
	{"Eve Brown", "eve@test.com", "UX/UI designer and accessibility advocate", 950, "Graphic Design", "TypeScript"},
}

var fixtureSkills = []struct {
	name     string
	category string
}{
	{"JavaScript", "Programming"},
	{"React", "Frontend"},
	{"Node.js", "Backend"},
	{"TypeScript", "Programming"},
	{"UI/UX Design", "Design"},
	{"Python", "Programming"},
	{"SQL", "Database"},
	{"Git", "Tools"},
	{"Docker", "DevOps"},
	{"Graphic Design", "Design"},
}

// SeedFixtures creates the well-known demo accounts and skills. It is
// idempotent: re-running updates nothing that already exists.
func (s *Seeder) SeedFixtures() ([]models.User, error) {
	log.Println("Creating skills...")
	skills := make(map[string]*models.Skill, len(fixtureSkills))
	for _, fs := range fixtureSkills {
		skill, err := s.factory.EnsureSkill(fs.name, fs.category)
		if err != nil {
			return nil, fmt.Errorf("seed skill %s: %w", fs.name, err)
		}
		skills[fs.name] = skill
	}

	log.Println("Creating demo users...")
	var users []models.User
	for _, fu := range fixtureUsers {
		user := models.User{
			Name:     fu.name,
			Email:    fu.email,
			Password: s.factory.passwordHash,
			Bio:      fu.bio,
			XP:       fu.xp,
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&user).Error
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", fu.email, err)
		}
		if user.ID == 0 {
			if err := s.db.Where("email = ?", fu.email).First(&user).Error; err != nil {
				return nil, err
			}
		}

		if err := s.factory.Declare(&user, skills[fu.teach], models.SkillTypeTeach, models.SkillLevelAdvanced); err != nil {
			return nil, err
		}
		if err := s.factory.Declare(&user, skills[fu.learn], models.SkillTypeLearn, models.SkillLevelBeginner); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedCommunity adds numUsers random members with skills, a spread of
// sessions in every lifecycle state, and testimonials on completed ones.
func (s *Seeder) SeedCommunity(numUsers int) error {
	log.Printf("Creating %d community members...", numUsers)

	var skills []models.Skill
	if err := s.db.Find(&skills).Error; err != nil {
		return err
	}
	if len(skills) == 0 {
		return fmt.Errorf("no skills present, run SeedFixtures first")
	}

	levels := []models.SkillLevel{
		models.SkillLevelBeginner, models.SkillLevelIntermediate, models.SkillLevelAdvanced,
	}
	var users []*models.User
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		// One to teach, one to learn, never the same skill both ways.
		teach := &skills[s.factory.rng.Intn(len(skills))]
		learn := &skills[s.factory.rng.Intn(len(skills))]
		if err := s.factory.Declare(user, teach, models.SkillTypeTeach, levels[s.factory.rng.Intn(len(levels))]); err != nil {
			return err
		}
		if learn.ID != teach.ID {
			if err := s.factory.Declare(user, learn, models.SkillTypeLearn, models.SkillLevelBeginner); err != nil {
				return err
			}
		}
		users = append(users, user)
	}

	log.Println("Creating sessions and testimonials...")
	statuses := []models.SessionStatus{
		models.SessionPending, models.SessionConfirmed,
		models.SessionCompleted, models.SessionCompleted, models.SessionCancelled,
	}
	for i := 0; i < numUsers; i++ {
		teacher := users[s.factory.rng.Intn(len(users))]
		learner := users[s.factory.rng.Intn(len(users))]
		if teacher.ID == learner.ID {
			continue
		}
		skill := &skills[s.factory.rng.Intn(len(skills))]
		status := statuses[s.factory.rng.Intn(len(statuses))]
		session, err := s.factory.CreateSession(teacher, learner, skill, status)
		if err != nil {
			return err
		}
		if status == models.SessionCompleted && s.factory.rng.Intn(2) == 0 {
			if _, err := s.factory.CreateTestimonial(session, s.factory.rng.Intn(5)+1); err != nil {
				return err
			}
		}
	}
	return nil
}
