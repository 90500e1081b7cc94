package server

import (
	"errors"
	"fmt"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LikeMessage handles POST /like/:id, then sends the browser back to the
// message page where the button now reads "Unlike".
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID := currentUserID(c)

	// Ensure the message exists before recording the like.
	if _, err := s.messageRepo.GetByID(ctx, id, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.notFound(c, "message", id)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.messageRepo.Like(ctx, userID, id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.LikeToggles.WithLabelValues("like").Inc()

	return c.Redirect(fmt.Sprintf("/messages/%d", id), fiber.StatusFound)
}

// UnlikeMessage handles POST /unlike/:id. Unliking a message that was never
// liked is a harmless no-op redirect.
func (s *Server) UnlikeMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID := currentUserID(c)

	if err := s.messageRepo.Unlike(ctx, userID, id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.LikeToggles.WithLabelValues("unlike").Inc()

	return c.Redirect(fmt.Sprintf("/messages/%d", id), fiber.StatusFound)
}

// ShowLikedMessages handles GET /users/:id/likes
func (s *Server) ShowLikedMessages(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	profile, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.notFound(c, "user", id)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	page := parsePagination(c, 50)
	messages, err := s.messageRepo.ListLiked(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.render(c, "likes", fiber.Map{
		"Profile":  profile,
		"Messages": messages,
	})
}
