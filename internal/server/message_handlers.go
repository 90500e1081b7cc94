package server

import (
	"errors"
	"fmt"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NewMessageForm handles GET /messages/new
func (s *Server) NewMessageForm(c *fiber.Ctx) error {
	return s.render(c, "message_new", nil)
}

// CreateMessage handles POST /messages/new. On success the browser is sent to
// the author's page, where the fresh message is visible.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Text string `form:"text" json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.flashAndRedirect(c, "Invalid message submission.", "/messages/new")
	}
	if err := validation.ValidateMessageText(req.Text); err != nil {
		if c.Accepts("text/html", "application/json") == "application/json" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		return s.flashAndRedirect(c, err.Error(), "/messages/new")
	}

	message := &models.Message{
		Text:   req.Text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.MessagesCreated.Inc()

	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusFound)
}

// ShowMessage handles GET /messages/:id
func (s *Server) ShowMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID := currentUserID(c)

	message, err := s.messageRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.notFound(c, "message", id)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.render(c, "message", fiber.Map{
		"Message": message,
	})
}

// DeleteMessage handles POST /messages/:id/delete. Only the owner may delete;
// anyone else gets the same unauthorized flash as a logged-out visitor.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID := currentUserID(c)

	message, err := s.messageRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.notFound(c, "message", id)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if message.UserID != userID {
		return s.flashAndRedirect(c, flashAccessUnauthorized, "/")
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusFound)
}
