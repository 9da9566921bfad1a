package post

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/inkwell-blog/core/internal/pkg/slugify"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts post routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts")

	posts.GET("", h.list)
	posts.GET("/mine", authMW, h.listMine)
	posts.GET("/id/:id", h.getByID)
	posts.GET("/:slug", h.getBySlug)

	authed := posts.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, next, err := h.svc.List(q, ListFilter{
		Published:   lq.Published,
		CategoryIDs: normalizeIDList(lq.CategoryIDs),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, toListItems(items), next)
}

// listMine GET /posts/mine  [auth]
func (h *Handler) listMine(c *gin.Context) {
	q := pagination.FromContext(c)

	items, next, err := h.svc.List(q, ListFilter{AuthorID: middleware.CurrentUserID(c)})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, toListItems(items), next)
}

// getBySlug GET /posts/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, toResponse(post))
}

// getByID GET /posts/id/:id
func (h *Handler) getByID(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, toResponse(post))
}

// create POST /posts  [auth]
// The created post is returned without categories attached; callers
// re-fetch for the full view.
func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Slug == "" {
		dto.Slug = slugify.Slugify(dto.Title)
	}
	if dto.Slug == "" {
		response.BadRequest(c, "slug is required when no slug can be derived from the title")
		return
	}

	post, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(post))
}

// update PUT|PATCH /posts/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, toResponse(post))
}

// delete DELETE /posts/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "post not found")
		return
	}
	response.NoContent(c)
}

func toListItems(items []ListedPost) []listItem {
	out := make([]listItem, len(items))
	for i := range items {
		out[i] = toListItem(&items[i])
	}
	return out
}

// normalizeIDList accepts both repeated query params and a single
// comma-separated value.
func normalizeIDList(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
