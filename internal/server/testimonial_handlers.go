package server

import (
	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTestimonials handles GET /api/testimonials?userId=
func (s *Server) GetTestimonials(c *fiber.Ctx) error {
	userID, err := s.parseQueryID(c, "userId")
	if err != nil {
		return nil
	}

	testimonials, svcErr := s.testimonialService.ListReceived(c.Context(), userID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"testimonials": testimonials})
}

// CreateTestimonial handles POST /api/testimonials
func (s *Server) CreateTestimonial(c *fiber.Ctx) error {
	var req struct {
		SessionID uint   `json:"session_id"`
		ToUserID  uint   `json:"to_user_id"`
		Message   string `json:"message"`
		Rating    int    `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SessionID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("session_id is required"))
	}
	if req.ToUserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("to_user_id is required"))
	}

	testimonial, err := s.testimonialService.Create(c.Context(), service.CreateTestimonialInput{
		SessionID:  req.SessionID,
		FromUserID: currentUserID(c),
		ToUserID:   req.ToUserID,
		Message:    req.Message,
		Rating:     req.Rating,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(testimonial)
}
