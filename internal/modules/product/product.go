// Package product serves the storefront catalog.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/pkg/response"
	"github.com/stackfolio/core/internal/store"
)

type CreateProductDTO struct {
	Name        string  `json:"name"  binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

type UpdateProductDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Stock       int       `json:"stock"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

func toResponse(p *models.Product) productResponse {
	return productResponse{
		ID: p.ID, Name: p.Name, Description: p.Description,
		Price: p.Price, Category: p.Category, ImageURL: p.ImageURL, Stock: p.Stock,
		Created: p.CreatedAt, Modified: p.UpdatedAt,
	}
}

type Service struct {
	products store.ProductStore
}

func NewService(products store.ProductStore) *Service {
	return &Service{products: products}
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, dto *CreateProductDTO) (*models.Product, error) {
	p := &models.Product{
		Name:        strings.TrimSpace(dto.Name),
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
		ImageURL:    dto.ImageURL,
		Stock:       dto.Stock,
	}
	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateProductDTO) (*models.Product, error) {
	return s.products.Update(ctx, id, store.ProductPatch{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
		ImageURL:    dto.ImageURL,
		Stock:       dto.Stock,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/products")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]productResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	// The storefront consumes a {products, count} envelope.
	response.OK(c, gin.H{"products": out, "count": len(out)})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFoundMsg(c, "Product not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFoundMsg(c, "Product not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFoundMsg(c, "Product not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
