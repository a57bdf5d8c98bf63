package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/repositories"
)

type SignupHandler struct {
	userRepo repositories.UserRepository
	sessions *session.Store
}

func NewSignupHandler(userRepo repositories.UserRepository, sessions *session.Store) *SignupHandler {
	return &SignupHandler{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// HandleSignup handles POST /signup. A successful signup also signs the new
// user in by pinning their id in the session.
func (h *SignupHandler) HandleSignup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password must be at least 8 characters",
		})
	}

	if _, err := h.userRepo.FindByUsername(req.Username); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username already taken",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to hash password",
		})
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.userRepo.Create(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create user",
		})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load session",
		})
	}
	sess.Set(sessionKeyUser, user.ID.String())
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.SignupResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}
