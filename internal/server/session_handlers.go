package server

import (
	"errors"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"
	"github.com/itsFiz/upskillrr/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMySessions handles GET /api/sessions
func (s *Server) GetMySessions(c *fiber.Ctx) error {
	sessions, err := s.sessionService.GetUserSessions(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sessions)
}

// CreateSession handles POST /api/sessions
func (s *Server) CreateSession(c *fiber.Ctx) error {
	var req struct {
		TeacherID uint      `json:"teacher_id"`
		SkillName string    `json:"skill_name"`
		Date      time.Time `json:"date"`
		Message   string    `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TeacherID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("teacher_id is required"))
	}

	session, err := s.sessionService.Create(c.Context(), service.CreateSessionInput{
		LearnerID: currentUserID(c),
		TeacherID: req.TeacherID,
		SkillName: req.SkillName,
		Date:      req.Date,
		Message:   req.Message,
	})
	if err != nil {
		// A dependency failure means the booking itself committed; return
		// the session with the error so the client can see both.
		var appErr *models.AppError
		if session != nil && errors.As(err, &appErr) && appErr.Code == "DEPENDENCY_FAILURE" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"session": session,
				"error":   appErr.Message,
				"code":    appErr.Code,
			})
		}
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// UpdateSessionStatus handles PATCH /api/sessions/:id
func (s *Server) UpdateSessionStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	session, svcErr := s.sessionService.Transition(
		c.Context(), currentUserID(c), id, models.SessionStatus(req.Status))
	if svcErr != nil {
		var appErr *models.AppError
		if session != nil && errors.As(svcErr, &appErr) && appErr.Code == "DEPENDENCY_FAILURE" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"session": session,
				"error":   appErr.Message,
				"code":    appErr.Code,
			})
		}
		return respondServiceError(c, svcErr)
	}
	return c.JSON(session)
}
