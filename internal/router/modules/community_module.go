package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
)

type CommunityModule struct {
	Handler *handlers.CommunityHandler
	Guard   Guard
}

func NewCommunityModule(h *handlers.CommunityHandler, g Guard) *CommunityModule {
	return &CommunityModule{Handler: h, Guard: g}
}

func (m *CommunityModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg, "/community/posts")
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.GET("/search", m.Handler.Search)
		auth.POST("/:id/like", m.Handler.ToggleLike)
		auth.GET("/:id/likes", m.Handler.Likes)
		auth.GET("/:id/comments", m.Handler.Comments)
		auth.POST("/:id/comments", m.Handler.AddComment)
	}
}
