package category

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/inkwell-blog/core/internal/pkg/slugify"
)

// Handler handles category HTTP requests. Categories have no ownership
// concept; every operation is public.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts category routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cats := rg.Group("/categories")
	cats.GET("", h.list)
	cats.GET("/:slug", h.getBySlug)
	cats.POST("", h.create)
	cats.PUT("/:id", h.update)
	cats.PATCH("/:id", h.update)
	cats.DELETE("/:id", h.delete)
}

// list GET /categories
func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cats)
}

// getBySlug GET /categories/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "category not found")
		return
	}
	response.OK(c, cat)
}

// create POST /categories
func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Slug == "" {
		dto.Slug = slugify.Slugify(dto.Name)
	}
	if dto.Slug == "" {
		response.BadRequest(c, "slug is required when no slug can be derived from the name")
		return
	}
	cat, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

// update PUT|PATCH /categories/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "category not found")
		return
	}
	response.OK(c, cat)
}

// delete DELETE /categories/:id
func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "category not found")
		return
	}
	response.NoContent(c)
}
