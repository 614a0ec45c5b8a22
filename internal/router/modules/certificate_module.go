package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
)

type CertificateModule struct {
	Handler *handlers.CertificateHandler
	Guard   Guard
}

func NewCertificateModule(h *handlers.CertificateHandler, g Guard) *CertificateModule {
	return &CertificateModule{Handler: h, Guard: g}
}

func (m *CertificateModule) Register(rg *gin.RouterGroup) {
	// verification only needs the document itself
	rg.POST("/certificates/verify", m.Guard.PerIP("cert-verify", 60), m.Handler.Verify)

	auth := m.Guard.Protected(rg, "/certificates")
	{
		auth.GET("", m.Handler.List)
		auth.GET("/:moduleId/download", m.Handler.Download)
		auth.POST("/:moduleId/mint", m.Guard.PerUser("mint", 5), m.Handler.Mint)
	}
}
