package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/api/dto"
	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// AuthHandler manages staff authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return apperrors.NewValidationError("username, password required", nil)
	}

	user, token, expiresAt, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Success:   true,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}})
}

// Register POST /auth/register. Admin only; creates seller and scanner
// accounts for the event crew.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}
	role := domain.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	switch role {
	case domain.RoleAdmin, domain.RoleSeller, domain.RoleScanner:
	default:
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}

	user, err := h.service.Register(c.UserContext(), req.Username, req.Email, req.Password, role)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	}})
}
