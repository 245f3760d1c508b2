package server

import (
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMySkills handles GET /api/skills
func (s *Server) GetMySkills(c *fiber.Ctx) error {
	skills, err := s.skillService.GetUserSkills(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"skills": skills})
}

// DeclareSkill handles POST /api/skills
func (s *Server) DeclareSkill(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Type     string `json:"type"`
		Level    string `json:"level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	assoc, err := s.skillService.DeclareSkill(c.Context(), service.DeclareSkillInput{
		UserID:   currentUserID(c),
		Name:     req.Name,
		Category: req.Category,
		Type:     models.SkillType(req.Type),
		Level:    models.SkillLevel(req.Level),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(assoc)
}

// RemoveSkill handles DELETE /api/skills/:id
func (s *Server) RemoveSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.skillService.RemoveSkill(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill removed"})
}
