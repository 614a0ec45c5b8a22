package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type AuthService interface {
	Register(ctx context.Context, in app.RegisterInput) (*entity.Profile, app.TokenPair, error)
	Login(ctx context.Context, email, password string) (*entity.Profile, app.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (app.TokenPair, string, error)
	Logout(ctx context.Context, userID string) error
	Federated(ctx context.Context, idToken string) (*app.FederatedResult, app.TokenPair, error)
}

type AuthHandler struct {
	Svc     AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc AuthService, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name" binding:"max=120"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type federatedRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

func tokenMeta(pair app.TokenPair) map[string]any {
	return map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry}
}

func (h *AuthHandler) setPair(c *gin.Context, pair app.TokenPair) {
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, pair, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{Email: req.Email, Password: req.Password, FullName: req.FullName})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.setPair(c, pair)
	response.Success(c, http.StatusCreated, p, "registered", tokenMeta(pair))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.setPair(c, pair)
	response.Success(c, http.StatusOK, p, "login successful", tokenMeta(pair))
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		writeError(c, h.Logger, err)
		return
	}
	h.setPair(c, pair)
	response.Success(c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", tokenMeta(pair))
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString("userID")); err != nil {
		h.Logger.WithError(err).Warn("delete session failed")
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Federated POST /api/auth/federated
func (h *AuthHandler) Federated(c *gin.Context) {
	var req federatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, pair, err := h.Svc.Federated(c.Request.Context(), req.IDToken)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.setPair(c, pair)
	response.Success(c, http.StatusOK, res, "signed in", tokenMeta(pair))
}
