package dto

import (
	"time"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// LoginRequest payload for staff login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors the authenticate_user contract plus the token.
type LoginResponse struct {
	Success   bool        `json:"success"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}
