// Package markdown renders post markdown to HTML for the presentation
// layer.
package markdown

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// Render converts markdown text to HTML.
func Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type renderRequest struct {
	Text string `json:"text" binding:"required"`
}

// Handler exposes the render endpoint.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// RegisterRoutes mounts markdown routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	md := rg.Group("/markdown")
	md.POST("/render", h.render)
}

// render POST /markdown/render
func (h *Handler) render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	html, err := Render(req.Text)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"html": html})
}
