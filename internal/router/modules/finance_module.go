package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
	"github.com/emprendevoz/emprende-api/internal/interface/middleware"
)

type FinanceModule struct {
	Handler *handlers.FinanceHandler
	Guard   Guard
}

func NewFinanceModule(h *handlers.FinanceHandler, g Guard) *FinanceModule {
	return &FinanceModule{Handler: h, Guard: g}
}

func (m *FinanceModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg, "/finance")
	{
		auth.GET("/transactions", m.Handler.List)
		auth.POST("/transactions", m.Handler.Create)
		auth.DELETE("/transactions/:id", m.Handler.Delete)

		own := middleware.Owner("userId")
		auth.GET("/summary/:userId", own, m.Handler.Summary)
		auth.GET("/kpis/:userId", own, m.Handler.KPIs)
	}
}
