package server

import (
	"github.com/itsFiz/upskillrr/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetWeeklyGoal handles GET /api/goals
func (s *Server) GetWeeklyGoal(c *fiber.Ctx) error {
	status, err := s.goalService.GetStatus(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}

// SetWeeklyGoal handles POST /api/goals
func (s *Server) SetWeeklyGoal(c *fiber.Ctx) error {
	var req struct {
		Target int `json:"target"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.goalService.SetTarget(c.Context(), currentUserID(c), req.Target)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}
