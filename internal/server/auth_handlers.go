package server

import (
	"fmt"
	"strconv"
	"time"

	"warbler/internal/models"
	"warbler/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SignupForm handles GET /signup
func (s *Server) SignupForm(c *fiber.Ctx) error {
	if _, ok := s.sessionUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return s.render(c, "signup", nil)
}

// Signup handles POST /signup: creates the account and logs the user in.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `form:"username" json:"username"`
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
		ImageURL string `form:"image_url" json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.flashAndRedirect(c, "Invalid signup submission.", "/signup")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return s.flashAndRedirect(c, "Username, email, and password are required.", "/signup")
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return s.flashAndRedirect(c, err.Error(), "/signup")
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return s.flashAndRedirect(c, err.Error(), "/signup")
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return s.flashAndRedirect(c, err.Error(), "/signup")
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByUsername(c.Context(), req.Username)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}
	if existing != nil {
		return s.flashAndRedirect(c, "Username or email already taken.", "/signup")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		ImageURL: imageURL,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.logInSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// API clients get a token body instead of the redirect.
	if c.Accepts("text/html", "application/json") == "application/json" {
		token, err := s.generateToken(user.ID, user.Username)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"user":  user,
		})
	}

	return c.Redirect("/", fiber.StatusFound)
}

// LoginForm handles GET /login
func (s *Server) LoginForm(c *fiber.Ctx) error {
	if _, ok := s.sessionUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return s.render(c, "login", nil)
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `form:"username" json:"username"`
		Password string `form:"password" json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.flashAndRedirect(c, "Invalid login submission.", "/login")
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return s.flashAndRedirect(c, "Invalid credentials.", "/login")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return s.flashAndRedirect(c, "Invalid credentials.", "/login")
	}

	if err := s.logInSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if c.Accepts("text/html", "application/json") == "application/json" {
		token, err := s.generateToken(user.ID, user.Username)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		return c.JSON(fiber.Map{
			"token": token,
			"user":  user,
		})
	}

	return s.flashAndRedirect(c, fmt.Sprintf("Hello, %s!", user.Username), "/")
}

// Logout handles POST /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.logOutSession(c); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return s.flashAndRedirect(c, "You have been logged out.", "/")
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "warbler",
		"aud":      "warbler-client",
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
