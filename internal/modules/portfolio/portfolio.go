// Package portfolio serves the personal-site backend: the public project
// showcase and the contact form with its mail relay.
package portfolio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/pkg/mail"
	"github.com/stackfolio/core/internal/pkg/response"
	"github.com/stackfolio/core/internal/store"
	"go.uber.org/zap"
)

type ContactDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type CreateProjectDTO struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
}

type UpdateProjectDTO struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tech        *[]string `json:"tech"`
	Link        *string   `json:"link"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tech        []string  `json:"tech"`
	Link        string    `json:"link"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

func toResponse(p *models.Project) projectResponse {
	tech := p.Tech
	if tech == nil {
		tech = []string{}
	}
	return projectResponse{
		ID: p.ID, Title: p.Title, Description: p.Description,
		Tech: tech, Link: p.Link,
		Created: p.CreatedAt, Modified: p.UpdatedAt,
	}
}

type Service struct {
	projects store.ProjectStore
	contacts store.ContactStore
	sender   *mail.Sender
	log      *zap.Logger
}

func NewService(projects store.ProjectStore, contacts store.ContactStore, sender *mail.Sender, log *zap.Logger) *Service {
	return &Service{projects: projects, contacts: contacts, sender: sender, log: log}
}

func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

func (s *Service) CreateProject(ctx context.Context, dto *CreateProjectDTO) (*models.Project, error) {
	p := &models.Project{
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		Tech:        dto.Tech,
		Link:        dto.Link,
	}
	if err := s.projects.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProject(ctx context.Context, id string, dto *UpdateProjectDTO) (*models.Project, error) {
	return s.projects.Update(ctx, id, store.ProjectPatch{
		Title:       dto.Title,
		Description: dto.Description,
		Tech:        dto.Tech,
		Link:        dto.Link,
	})
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// SubmitContact persists the submission, then relays it to the site owner.
// The relay is fire-and-forget: a mail failure never fails the request.
func (s *Service) SubmitContact(ctx context.Context, dto *ContactDTO) error {
	m := &models.Contact{Name: dto.Name, Email: dto.Email, Message: dto.Message}
	if err := s.contacts.Insert(ctx, m); err != nil {
		return err
	}

	if s.sender != nil && s.sender.Enabled() {
		go func() {
			msg, err := s.sender.ContactNotification(m.Name, m.Email, m.Message)
			if err == nil {
				err = s.sender.Send(msg)
			}
			if err != nil {
				s.log.Warn("contact notification failed", zap.Error(err))
			}
		}()
	}
	return nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.listProjects)

	a := g.Group("", authMW)
	a.POST("", h.createProject)
	a.PUT("/:id", h.updateProject)
	a.DELETE("/:id", h.deleteProject)

	rg.POST("/contact", h.contact)
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.OK(c, out)
}

func (h *Handler) createProject(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.CreateProject(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(p))
}

func (h *Handler) updateProject(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.UpdateProject(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFoundMsg(c, "Project not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFoundMsg(c, "Project not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) contact(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.SubmitContact(c.Request.Context(), &dto); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}
