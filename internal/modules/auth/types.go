package auth

import (
	"errors"
	"time"

	"github.com/stackfolio/core/internal/models"
)

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

var (
	errUserNotFound   = errors.New("auth user not found")
	errWrongPassword  = errors.New("auth wrong password")
	errAccountExists  = errors.New("username or email already registered")
	defaultSessionTTL = 30 * 24 * time.Hour
)
