package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/internal/config"
	"github.com/glovebox/glovebox/backend/go-services/internal/models"
	"github.com/glovebox/glovebox/backend/go-services/internal/sessions"
	"github.com/glovebox/glovebox/backend/go-services/internal/tokens"
	"github.com/glovebox/glovebox/backend/go-services/internal/users"
	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	verifier    *tokens.Verifier
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, verifier: tokens.NewVerifier(cfg.JWT.Secret)}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg gin.IRouter) {
	a := rg.Group("/auth")
	a.POST("/register", h.SignUp)
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// RegisterProfile mounts /me on an authenticated group.
func (h *AuthHandler) RegisterProfile(rg gin.IRouter) {
	rg.GET("/me", h.Me)
	rg.PUT("/me", h.UpdateMe)
}

func (h *AuthHandler) accessTTL() time.Duration {
	if h.cfg.JWT.AccessTokenTTL > 0 {
		return h.cfg.JWT.AccessTokenTTL
	}
	return 15 * time.Minute
}

func (h *AuthHandler) refreshTTL() time.Duration {
	if h.cfg.JWT.RefreshTokenTTL > 0 {
		return h.cfg.JWT.RefreshTokenTTL
	}
	return 7 * 24 * time.Hour
}

// issue creates a refresh session and access token and writes the login response.
func (h *AuthHandler) issue(c *gin.Context, status int, u *models.User) {
	rft, err := h.sessionsSvc.CreateSession(c.Request.Context(), u.ID, h.refreshTTL())
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.accessTTL())
	if err != nil {
		logger.Errorf("failed to sign access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(status, gin.H{"accessToken": access, "refreshToken": rft, "user": u, "expiresIn": int(h.accessTTL().Seconds())})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeUserError(c, err)
		return
	}
	logger.Infof("registered user %s", u.ID)
	h.issue(c, http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeUserError(c, err)
		return
	}
	h.issue(c, http.StatusOK, u)
}

// Refresh accepts a refresh token and returns a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.sessionsSvc.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Errorf("refresh validation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	u, err := h.usersSvc.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		writeUserError(c, err)
		return
	}
	access, err := tokens.GenerateAccessToken(h.cfg, u, h.accessTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "expiresIn": int(h.accessTTL().Seconds())})
}

// Logout removes the refresh session and blacklists a still valid bearer access
// token for the rest of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if at, ok := middleware.BearerToken(c); ok {
		if ttl, err := h.verifier.Remaining(at, time.Now()); err == nil && ttl > 0 {
			if err := sessions.BlacklistAccessToken(c.Request.Context(), at, ttl); err != nil {
				logger.Errorf("blacklist access token: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist access token"})
				return
			}
		}
	}
	if err := h.sessionsSvc.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		logger.Errorf("delete session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.usersSvc.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.UpdateName(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		writeUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Errorf("user store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
