// Package user exposes profile updates for the authenticated account.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/middleware"
	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/pkg/response"
	"github.com/stackfolio/core/internal/store"
)

type UpdateUsernameDTO struct {
	Username string `json:"username" binding:"required,min=3"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Service struct {
	users store.UserStore
}

func NewService(users store.UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) UpdateUsername(ctx context.Context, actor, username string) (*models.User, error) {
	return s.users.UpdateUsername(ctx, actor, strings.TrimSpace(username))
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	u := rg.Group("/user", authMW)
	u.PUT("/update-username", h.updateUsername)
}

func (h *Handler) updateUsername(c *gin.Context) {
	var dto UpdateUsernameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateUsername(c.Request.Context(), middleware.CurrentUserID(c), dto.Username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			response.Conflict(c, "username already taken")
		case errors.Is(err, store.ErrNotFound):
			response.NotFoundMsg(c, "User not found")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"user": userResponse{ID: u.ID, Username: u.Username, Email: u.Email}})
}
