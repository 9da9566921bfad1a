package app

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/modules/auth"
	"github.com/inkwell-blog/core/internal/modules/category"
	"github.com/inkwell-blog/core/internal/modules/markdown"
	"github.com/inkwell-blog/core/internal/modules/pages"
	"github.com/inkwell-blog/core/internal/modules/post"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Browser navigation gate
	pages.NewHandler().RegisterRoutes(r)

	// Versioned API
	api := r.Group(apiPrefix)

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api)
	post.NewHandler(post.NewService(db)).RegisterRoutes(api, authMW)
	markdown.NewHandler().RegisterRoutes(api)
}
