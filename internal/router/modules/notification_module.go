package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Guard   Guard
}

func NewNotificationModule(h *handlers.NotificationHandler, g Guard) *NotificationModule {
	return &NotificationModule{Handler: h, Guard: g}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg, "/notifications")
	auth.GET("", m.Handler.List)
	auth.POST("/:id/read", m.Handler.MarkRead)
}
