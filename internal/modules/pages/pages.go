// Package pages owns browser page access: protected routes bounce
// anonymous viewers to the login view, and authenticated viewers visiting
// the auth views are sent to the dashboard. The pages themselves are
// rendered client-side; only the routing policy lives here.
package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/pkg/jwt"
)

// Handler gates browser navigation.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// RegisterRoutes mounts the gated browser routes on the root router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/dashboard", h.dashboard)
	r.GET("/dashboard/*page", h.dashboard)
	r.GET("/login", h.authPage)
	r.GET("/register", h.authPage)
}

func (h *Handler) dashboard(c *gin.Context) {
	if !hasValidSession(c) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	servePage(c, "dashboard")
}

func (h *Handler) authPage(c *gin.Context) {
	if hasValidSession(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	servePage(c, c.Request.URL.Path[1:])
}

func hasValidSession(c *gin.Context) bool {
	raw, err := c.Cookie(middleware.AuthCookieName)
	if err != nil {
		return false
	}
	claims, err := jwt.Verify(middleware.NormalizeToken(raw))
	return err == nil && claims.UserID != ""
}

func servePage(c *gin.Context, name string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<!doctype html><html><body data-page=\""+name+"\"></body></html>"))
}
