package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	// sessionUserKey is the session attribute holding the logged-in user id.
	sessionUserKey = "curr_user"
	// sessionFlashKey holds the one-time flash message shown on the next render.
	sessionFlashKey = "flash"

	flashAccessUnauthorized = "Access unauthorized."
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 page and returns false; callers should
// return nil in that case.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderNotFound(c)
		return 0, false
	}
	return uint(id), true
}

// sessionUserID reads the logged-in user id from the cookie session.
func (s *Server) sessionUserID(c *fiber.Ctx) (uint, bool) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return 0, false
	}
	userID, ok := sess.Get(sessionUserKey).(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// logInSession stores the user id in the session.
func (s *Server) logInSession(c *fiber.Ctx, userID uint) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

// logOutSession drops the whole session, including any pending flash.
func (s *Server) logOutSession(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// flashAndRedirect stores a one-time flash message and redirects.
func (s *Server) flashAndRedirect(c *fiber.Ctx, message, location string) error {
	if sess, err := s.sessions.Get(c); err == nil {
		sess.Set(sessionFlashKey, message)
		if saveErr := sess.Save(); saveErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "flash save failed", "error", saveErr)
		}
	}
	return c.Redirect(location, fiber.StatusFound)
}

// popFlash removes and returns the pending flash message, if any.
func (s *Server) popFlash(c *fiber.Ctx) string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return ""
	}
	message, _ := sess.Get(sessionFlashKey).(string)
	if message != "" {
		sess.Delete(sessionFlashKey)
		_ = sess.Save()
	}
	return message
}

// render draws a view inside the layout, injecting the flash message and the
// current user (when logged in) for the navigation bar.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flash"] = s.popFlash(c)

	if _, present := data["CurrentUser"]; !present {
		if userID, ok := s.sessionUserID(c); ok {
			if user, err := s.userRepo.GetByID(c.Context(), userID); err == nil {
				data["CurrentUser"] = user
			}
		}
	}

	return c.Render(name, data, "layout")
}

// notFound reports a missing record: JSON for API clients, the shared 404
// page for browsers.
func (s *Server) notFound(c *fiber.Ctx, resource string, id uint) error {
	if c.Accepts("text/html", "application/json") == "application/json" {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(resource, id))
	}
	return s.renderNotFound(c)
}

// renderNotFound draws the shared 404 page.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{
		"Status":  "404",
		"Message": "Sorry, that page does not exist.",
		"Flash":   s.popFlash(c),
	}, "layout")
}

// currentUserID returns the authenticated user id placed in locals by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}
