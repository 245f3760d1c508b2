package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetDiscoveryFeed handles GET /api/discovery (public)
func (s *Server) GetDiscoveryFeed(c *fiber.Ctx) error {
	feed, err := s.discoveryService.GetFeed(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}
