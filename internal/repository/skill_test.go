package repository

import (
	"context"
	"testing"

	"github.com/itsFiz/upskillrr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillRepository_FindOrCreate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, "React", "Frontend")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// Second call resolves to the same row and keeps the original category.
	second, err := repo.FindOrCreate(ctx, "React", "Something Else")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Frontend", second.Category)

	var count int64
	require.NoError(t, db.Model(&models.Skill{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSkillRepository_CreateAssociation_Duplicate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice Johnson", "alice@test.com", 0)
	skill := createTestSkill(t, db, "JavaScript", "Frontend")

	assoc := &models.UserSkill{
		UserID: user.ID, SkillID: skill.ID, Type: models.SkillTypeTeach, Level: models.SkillLevelAdvanced,
	}
	require.NoError(t, repo.CreateAssociation(ctx, assoc))
	require.NotNil(t, assoc.Skill)
	assert.Equal(t, "JavaScript", assoc.Skill.Name)

	err := repo.CreateAssociation(ctx, &models.UserSkill{
		UserID: user.ID, SkillID: skill.ID, Type: models.SkillTypeTeach, Level: models.SkillLevelBeginner,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The same skill with the other direction is a distinct declaration.
	require.NoError(t, repo.CreateAssociation(ctx, &models.UserSkill{
		UserID: user.ID, SkillID: skill.ID, Type: models.SkillTypeLearn, Level: models.SkillLevelBeginner,
	}))
}

func TestSkillRepository_GetUserSkillsByType(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Carol Davis", "carol@test.com", 0)
	design := createTestSkill(t, db, "UI/UX Design", "Design")
	js := createTestSkill(t, db, "JavaScript", "Frontend")

	require.NoError(t, db.Create(&models.UserSkill{
		UserID: user.ID, SkillID: design.ID, Type: models.SkillTypeTeach, Level: models.SkillLevelAdvanced,
	}).Error)
	require.NoError(t, db.Create(&models.UserSkill{
		UserID: user.ID, SkillID: js.ID, Type: models.SkillTypeLearn, Level: models.SkillLevelBeginner,
	}).Error)

	teach, err := repo.GetUserSkillsByType(ctx, user.ID, models.SkillTypeTeach)
	require.NoError(t, err)
	require.Len(t, teach, 1)
	assert.Equal(t, "UI/UX Design", teach[0].Skill.Name)

	all, err := repo.GetUserSkills(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSkillRepository_TrendingByTeachCount(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	react := createTestSkill(t, db, "React", "Frontend")
	node := createTestSkill(t, db, "Node.js", "Backend")
	createTestSkill(t, db, "Rust", "Backend")

	for i, email := range []string{"a@test.com", "b@test.com", "c@test.com"} {
		u := createTestUser(t, db, email, email, i*100)
		require.NoError(t, db.Create(&models.UserSkill{
			UserID: u.ID, SkillID: react.ID, Type: models.SkillTypeTeach, Level: models.SkillLevelAdvanced,
		}).Error)
		if i < 1 {
			require.NoError(t, db.Create(&models.UserSkill{
				UserID: u.ID, SkillID: node.ID, Type: models.SkillTypeTeach, Level: models.SkillLevelAdvanced,
			}).Error)
		}
	}
	// LEARN declarations do not count toward trending.
	learner := createTestUser(t, db, "Learner", "learner@test.com", 0)
	require.NoError(t, db.Create(&models.UserSkill{
		UserID: learner.ID, SkillID: node.ID, Type: models.SkillTypeLearn, Level: models.SkillLevelBeginner,
	}).Error)

	trending, err := repo.TrendingByTeachCount(ctx, 2)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, "React", trending[0].Name)
	assert.EqualValues(t, 3, trending[0].TeacherCount)
	assert.Equal(t, "Node.js", trending[1].Name)
	assert.EqualValues(t, 1, trending[1].TeacherCount)
}

func TestSkillRepository_DeleteAssociation(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice Johnson", "alice@test.com", 0)
	skill := createTestSkill(t, db, "TypeScript", "Frontend")
	assoc := &models.UserSkill{
		UserID: user.ID, SkillID: skill.ID, Type: models.SkillTypeTeach, Level: models.SkillLevelIntermediate,
	}
	require.NoError(t, repo.CreateAssociation(ctx, assoc))

	require.NoError(t, repo.DeleteAssociation(ctx, assoc.ID))

	_, err := repo.GetAssociation(ctx, assoc.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
