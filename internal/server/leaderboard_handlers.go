package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard handles GET /api/leaderboard
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	board, err := s.leaderboardService.GetLeaderboard(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(board)
}
