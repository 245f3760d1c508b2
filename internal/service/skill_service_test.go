package service

import (
	"context"
	"testing"

	"github.com/itsFiz/upskillrr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillService_DeclareSkill(t *testing.T) {
	t.Parallel()
	skills := &skillRepoStub{
		FindOrCreateFn: func(ctx context.Context, name, category string) (*models.Skill, error) {
			return &models.Skill{ID: 10, Name: name, Category: category}, nil
		},
		CreateAssociationFn: func(ctx context.Context, assoc *models.UserSkill) error {
			assoc.ID = 5
			return nil
		},
	}
	svc := NewSkillService(skills)

	assoc, err := svc.DeclareSkill(context.Background(), DeclareSkillInput{
		UserID: 1, Name: "  React  ", Category: "Frontend", Type: models.SkillTypeTeach,
		Level: models.SkillLevelAdvanced,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), assoc.SkillID)
	assert.Equal(t, models.SkillTypeTeach, assoc.Type)
	assert.Equal(t, models.SkillLevelAdvanced, assoc.Level)
}

func TestSkillService_DeclareSkill_Validation(t *testing.T) {
	t.Parallel()
	svc := NewSkillService(&skillRepoStub{})

	cases := []struct {
		name  string
		input DeclareSkillInput
	}{
		{"empty name", DeclareSkillInput{UserID: 1, Name: "   ", Type: models.SkillTypeTeach}},
		{"bad type", DeclareSkillInput{UserID: 1, Name: "React", Type: models.SkillType("MENTOR")}},
		{"bad level", DeclareSkillInput{UserID: 1, Name: "React", Type: models.SkillTypeTeach, Level: models.SkillLevel("GURU")}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.DeclareSkill(context.Background(), tc.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", appCode(err))
		})
	}
}

func TestSkillService_DeclareSkill_DefaultsToBeginner(t *testing.T) {
	t.Parallel()
	skills := &skillRepoStub{
		FindOrCreateFn: func(ctx context.Context, name, category string) (*models.Skill, error) {
			return &models.Skill{ID: 10, Name: name}, nil
		},
		CreateAssociationFn: func(ctx context.Context, assoc *models.UserSkill) error {
			return nil
		},
	}
	svc := NewSkillService(skills)

	assoc, err := svc.DeclareSkill(context.Background(), DeclareSkillInput{
		UserID: 1, Name: "React", Type: models.SkillTypeLearn,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SkillLevelBeginner, assoc.Level)
}

func TestSkillService_RemoveSkill_OwnershipCheck(t *testing.T) {
	t.Parallel()
	deleted := false
	skills := &skillRepoStub{
		GetAssociationFn: func(ctx context.Context, id uint) (*models.UserSkill, error) {
			return &models.UserSkill{ID: id, UserID: 2}, nil
		},
		DeleteAssociationFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewSkillService(skills)

	err := svc.RemoveSkill(context.Background(), 1, 5)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", appCode(err))
	assert.False(t, deleted)

	require.NoError(t, svc.RemoveSkill(context.Background(), 2, 5))
	assert.True(t, deleted)
}
