package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
)

type DiagnosticModule struct {
	Handler *handlers.DiagnosticHandler
	Guard   Guard
}

func NewDiagnosticModule(h *handlers.DiagnosticHandler, g Guard) *DiagnosticModule {
	return &DiagnosticModule{Handler: h, Guard: g}
}

func (m *DiagnosticModule) Register(rg *gin.RouterGroup) {
	// questions are public so the landing page can render the quiz
	rg.GET("/diagnostic/questions", m.Guard.PerIP("questions", 120), m.Handler.Questions)

	auth := m.Guard.Protected(rg, "/diagnostic")
	auth.POST("/submit", m.Handler.Submit)
	auth.GET("/result", m.Handler.Result)
}
