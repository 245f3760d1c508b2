package repository

import (
	"context"
	"errors"

	"github.com/itsFiz/upskillrr/internal/cache"
	"github.com/itsFiz/upskillrr/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// IncrementXP applies a relative XP increment at the store layer. Never
	// read-modify-write: concurrent awards must both land.
	IncrementXP(ctx context.Context, id uint, delta int) error
	ListByXPDesc(ctx context.Context) ([]models.User, error)
	FindTeachersBySkillNames(ctx context.Context, excludeUserID uint, names []string) ([]models.User, error)
	TopMentors(ctx context.Context, limit int) ([]models.User, error)
	GetWithStats(ctx context.Context, id uint) (*models.User, error)
	GetProfileByName(ctx context.Context, name string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) IncrementXP(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", delta))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	cache.InvalidateRankings(ctx)
	return nil
}

func (r *userRepository) ListByXPDesc(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("ReceivedTestimonials").
		Preload("TeachingSessions", "status = ?", models.SessionCompleted).
		Order("xp DESC").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// FindTeachersBySkillNames returns every user other than excludeUserID with
// at least one TEACH association whose skill name is in names. TEACH
// associations, received testimonials and completed teaching sessions are
// preloaded for scoring. Candidates come back in primary-key order, which
// is the stable order preserved on score ties.
func (r *userRepository) FindTeachersBySkillNames(ctx context.Context, excludeUserID uint, names []string) ([]models.User, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeUserID).
		Where(`EXISTS (
			SELECT 1 FROM user_skills us
			JOIN skills s ON s.id = us.skill_id
			WHERE us.user_id = users.id AND us.type = ? AND s.name IN ?
		)`, models.SkillTypeTeach, names).
		Preload("Skills", "type = ?", models.SkillTypeTeach).
		Preload("Skills.Skill").
		Preload("ReceivedTestimonials").
		Preload("TeachingSessions", "status = ?", models.SessionCompleted).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) TopMentors(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM user_skills us WHERE us.user_id = users.id AND us.type = ?)",
			models.SkillTypeTeach).
		Preload("Skills", "type = ?", models.SkillTypeTeach).
		Preload("Skills.Skill").
		Preload("ReceivedTestimonials").
		Preload("TeachingSessions", "status = ?", models.SessionCompleted).
		Order("xp DESC").
		Order("(SELECT COUNT(*) FROM testimonials t WHERE t.to_user_id = users.id) DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetWithStats(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("TeachingSessions", "status = ?", models.SessionCompleted).
		Preload("LearningSessions", "status = ?", models.SessionCompleted).
		Preload("ReceivedTestimonials").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetProfileByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Preload("Skills.Skill").
		Preload("TeachingSessions", "status = ?", models.SessionCompleted).
		Preload("LearningSessions", "status = ?", models.SessionCompleted).
		Preload("ReceivedTestimonials", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("ReceivedTestimonials.FromUser").
		Preload("ReceivedTestimonials.Session.Skill").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", name)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}
