package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, token, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errAccountExists) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, sessionResponse{Token: token, User: toUserResponse(u)})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.Forbidden(c, "invalid email or password")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, sessionResponse{Token: token, User: toUserResponse(u)})
}
