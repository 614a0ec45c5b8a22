package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
	"github.com/emprendevoz/emprende-api/internal/interface/middleware"
)

// LearningModule mounts the course catalog and gated progress routes.
// Routes carrying :userId are restricted to that user.
type LearningModule struct {
	Handler *handlers.LearningHandler
	Guard   Guard
}

func NewLearningModule(h *handlers.LearningHandler, g Guard) *LearningModule {
	return &LearningModule{Handler: h, Guard: g}
}

func (m *LearningModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg, "/learning")
	{
		auth.GET("/courses", m.Handler.Courses)
		auth.GET("/courses/:id", m.Handler.Course)
		auth.GET("/courses/:id/sections", m.Handler.Sections)

		own := middleware.Owner("userId")
		auth.GET("/progress/:userId", own, m.Handler.Progress)
		auth.GET("/progress/:userId/course/:courseId", own, m.Handler.CourseProgress)
		auth.POST("/progress/section", m.Handler.CompleteSection)
	}
}
