package note

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/middleware"
	"github.com/stackfolio/core/internal/pkg/response"
	"github.com/stackfolio/core/internal/store"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	notes := rg.Group("/notes")

	notes.GET("/shared/:shareToken", h.resolveShared)

	authed := notes.Group("", authMW)
	authed.GET("", h.list)
	authed.GET("/stats", h.stats)
	authed.GET("/analytics", h.analytics)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PUT("/:id/pin", h.pin)
	authed.PUT("/:id/favorite", h.favorite)
	authed.PUT("/:id/share", h.share)
	authed.DELETE("/:id", h.delete)
}

// respondErr maps service errors onto the wire taxonomy. Absence and foreign
// ownership answer identically.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, store.ErrNotFound):
		response.NotFoundMsg(c, "Note not found")
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Search:       c.Query("search"),
		Tag:          c.Query("tag"),
		FavoriteOnly: c.Query("favorite") == "true",
	}
	notes, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		respondErr(c, err)
		return
	}
	items := make([]noteResponse, len(notes))
	for i, n := range notes {
		items[i] = toResponse(&n)
	}
	response.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Created(c, toResponse(n))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateNoteDTO
	if err := decodeStrict(c, &dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) pin(c *gin.Context) {
	var dto PinDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.SetPinned(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), *dto.IsPinned)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) favorite(c *gin.Context) {
	var dto FavoriteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.SetFavorite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), *dto.IsFavorite)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) share(c *gin.Context) {
	var dto ShareDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.SetPublic(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), *dto.IsPublic)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) resolveShared(c *gin.Context) {
	n, err := h.svc.ResolveShared(c.Request.Context(), c.Param("shareToken"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, toResponse(n))
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) analytics(c *gin.Context) {
	analytics, err := h.svc.Analytics(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.OK(c, analytics)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	response.NoContent(c)
}

// decodeStrict decodes a JSON body rejecting unknown fields, closing the
// mass-assignment hole a permissive patch body would open.
func decodeStrict(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
