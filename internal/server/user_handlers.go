package server

import (
	"errors"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Home handles GET /: a recent-message feed for logged-in users, the
// anonymous landing page otherwise.
func (s *Server) Home(c *fiber.Ctx) error {
	ctx := c.Context()

	if _, ok := s.sessionUserID(c); !ok {
		return s.render(c, "home_anon", nil)
	}

	page := parsePagination(c, 50)
	messages, err := s.messageRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.render(c, "home", fiber.Map{
		"Messages": messages,
	})
}

// ShowUser handles GET /users/:id
func (s *Server) ShowUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	page := parsePagination(c, 50)
	profile, err := s.userRepo.GetByIDWithMessages(ctx, id, page.Limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.notFound(c, "user", id)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.render(c, "user", fiber.Map{
		"Profile":  profile,
		"Messages": profile.Messages,
	})
}
