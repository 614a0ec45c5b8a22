package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
)

// AuthModule mounts sign-up and session endpoints.
// Public: register, login, refresh, federated. Protected: logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   Guard
}

func NewAuthModule(h *handlers.AuthHandler, g Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Guard.PerIP("register", 10), m.Handler.Register)
	rg.POST("/auth/login", m.Guard.PerIP("login", 10), m.Handler.Login)
	rg.POST("/auth/federated", m.Guard.PerIP("federated", 10), m.Handler.Federated)
	rg.POST("/auth/refresh", m.Guard.PerIP("refresh", 60), m.Handler.Refresh)

	auth := m.Guard.Protected(rg, "/auth")
	auth.POST("/logout", m.Handler.Logout)
}
