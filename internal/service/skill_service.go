// Package service contains the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"strings"

	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/repository"
)

// SkillService provides skill declaration and lookup business logic.
type SkillService struct {
	skillRepo repository.SkillRepository
}

// DeclareSkillInput carries a new skill declaration.
type DeclareSkillInput struct {
	UserID   uint
	Name     string
	Category string
	Type     models.SkillType
	Level    models.SkillLevel
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// DeclareSkill resolves the skill by name (creating it when unknown) and
// attaches it to the user with the given direction and level. Declaring the
// same (skill, direction) twice is a conflict.
func (s *SkillService) DeclareSkill(ctx context.Context, in DeclareSkillInput) (*models.UserSkill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Skill name is required")
	}
	if in.Type != models.SkillTypeTeach && in.Type != models.SkillTypeLearn {
		return nil, models.NewValidationError("Skill type must be TEACH or LEARN")
	}
	level := in.Level
	if level == "" {
		level = models.SkillLevelBeginner
	}
	switch level {
	case models.SkillLevelBeginner, models.SkillLevelIntermediate, models.SkillLevelAdvanced:
	default:
		return nil, models.NewValidationError("Skill level must be BEGINNER, INTERMEDIATE or ADVANCED")
	}

	skill, err := s.skillRepo.FindOrCreate(ctx, name, strings.TrimSpace(in.Category))
	if err != nil {
		return nil, err
	}

	assoc := &models.UserSkill{
		UserID:  in.UserID,
		SkillID: skill.ID,
		Type:    in.Type,
		Level:   level,
	}
	if err := s.skillRepo.CreateAssociation(ctx, assoc); err != nil {
		return nil, err
	}
	return assoc, nil
}

// RemoveSkill deletes one of the user's own skill associations. Removing
// someone else's association is forbidden.
func (s *SkillService) RemoveSkill(ctx context.Context, userID, assocID uint) error {
	assoc, err := s.skillRepo.GetAssociation(ctx, assocID)
	if err != nil {
		return err
	}
	if assoc.UserID != userID {
		return models.NewForbiddenError("You can only remove your own skills")
	}
	return s.skillRepo.DeleteAssociation(ctx, assocID)
}

// GetUserSkills returns all of the user's skill associations with the
// resolved skill rows.
func (s *SkillService) GetUserSkills(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	return s.skillRepo.GetUserSkills(ctx, userID)
}
