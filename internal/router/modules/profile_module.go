package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Guard   Guard
}

func NewProfileModule(h *handlers.ProfileHandler, g Guard) *ProfileModule {
	return &ProfileModule{Handler: h, Guard: g}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg, "/")
	{
		auth.GET("/profile", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
		auth.GET("/profile/stats", m.Handler.Stats)

		auth.GET("/session", m.Handler.Session)
		auth.PUT("/session/wallet", m.Handler.SetWallet)
		auth.DELETE("/session/wallet", m.Handler.ClearWallet)
	}
}
