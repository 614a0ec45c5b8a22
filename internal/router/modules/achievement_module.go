package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
	"github.com/emprendevoz/emprende-api/internal/interface/middleware"
)

type AchievementModule struct {
	Handler *handlers.AchievementHandler
	Guard   Guard
}

func NewAchievementModule(h *handlers.AchievementHandler, g Guard) *AchievementModule {
	return &AchievementModule{Handler: h, Guard: g}
}

func (m *AchievementModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg, "/achievements")
	auth.Use(middleware.Owner("userId"))
	{
		auth.POST("/check/:userId", m.Handler.Check)
		auth.GET("/user/:userId", m.Handler.ForUser)
		auth.GET("/stats/:userId", m.Handler.Stats)
	}
}
