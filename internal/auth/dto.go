// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/amontalvo1020/rentalspro/internal/user"
)

type ValidateRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ValidateResponse struct {
	User  user.UserResponse `json:"user"`
	Token TokenResponse     `json:"token"`
}
