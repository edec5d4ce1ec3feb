package handler

import (
	"strings"

	"go-factory-console/internal/middleware"
	"go-factory-console/internal/model"
	"go-factory-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest represents the reset password request body
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := decodeInto(c, &req); err != nil {
		return respondError(c, err)
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

// SignUp registers a new account
// POST /api/v1/auth/sign-up
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req model.SignUpRequest
	if err := decodeInto(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.SignUp(req); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

// Profile returns the signed-in user
// GET /api/v1/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.authService.Profile(middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ResetPassword sets a new password for an account of the demo store
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := decodeInto(c, &req); err != nil {
		return respondError(c, err)
	}

	if req.Email == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and new_password are required"})
	}

	if len(req.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password must be at least 6 characters"})
	}

	if err := h.authService.ResetPassword(req.Email, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
