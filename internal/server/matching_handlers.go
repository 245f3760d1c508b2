package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMatches handles GET /api/matching
func (s *Server) GetMatches(c *fiber.Ctx) error {
	matches, err := s.matchingService.FindMatches(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}
