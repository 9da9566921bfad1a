package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/pkg/jwt"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

// Handler handles auth HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts auth routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/logout", h.logout)
	a.GET("/session", middleware.OptionalAuth(), h.session)
}

// register POST /auth/register
// Registration implies login: a session is established for the caller.
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Password != dto.ConfirmPassword {
		response.BadRequest(c, "passwords do not match")
		return
	}

	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	token, err := jwt.Mint(u.ID, u.Username)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	setAuthCookie(c, token)
	response.Created(c, identityResponse{ID: u.ID, Username: u.Username})
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	token, err := jwt.Mint(u.ID, u.Username)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	setAuthCookie(c, token)
	response.OK(c, identityResponse{ID: u.ID, Username: u.Username})
}

// logout POST /auth/logout
// Clears the cookie unconditionally; succeeds even with no session.
func (h *Handler) logout(c *gin.Context) {
	clearAuthCookie(c)
	response.OK(c, gin.H{"success": true})
}

// session GET /auth/session
// Returns the resolved identity or null; never errors.
func (h *Handler) session(c *gin.Context) {
	if !middleware.IsAuthenticated(c) {
		response.OK(c, nil)
		return
	}
	response.OK(c, gin.H{
		"user": identityResponse{
			ID:       middleware.CurrentUserID(c),
			Username: middleware.CurrentUsername(c),
		},
	})
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, int(jwt.TTL().Seconds()), "/", "", false, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
}
