package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type LearningService interface {
	Courses(ctx context.Context, routeType string) ([]entity.Course, error)
	Course(ctx context.Context, userID, courseID string) (*app.CourseView, error)
	Sections(ctx context.Context, userID, courseID string) ([]app.SectionView, error)
	Progress(ctx context.Context, userID string) ([]app.CourseProgress, error)
	CourseProgress(ctx context.Context, userID, courseID string) (*app.CourseDetailProgress, error)
	CompleteSection(ctx context.Context, userID, sectionID string, completed bool) (*app.SectionResult, error)
}

type LearningHandler struct {
	Svc    LearningService
	Logger *logrus.Logger
}

func NewLearningHandler(svc LearningService, logger *logrus.Logger) *LearningHandler {
	return &LearningHandler{Svc: svc, Logger: logger}
}

type coursesQuery struct {
	RouteType string `form:"route_type" binding:"omitempty,oneof=pre inc"`
}

type sectionProgressRequest struct {
	UserID    string `json:"user_id"`
	SectionID string `json:"section_id" binding:"required"`
	Completed *bool  `json:"completed"`
}

func (h *LearningHandler) Courses(c *gin.Context) {
	var q coursesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	courses, err := h.Svc.Courses(c.Request.Context(), q.RouteType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, courses, "courses", nil)
}

func (h *LearningHandler) Course(c *gin.Context) {
	v, err := h.Svc.Course(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "course", nil)
}

func (h *LearningHandler) Sections(c *gin.Context) {
	v, err := h.Svc.Sections(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "sections", nil)
}

// Progress GET /api/learning/progress/:userId
func (h *LearningHandler) Progress(c *gin.Context) {
	p, err := h.Svc.Progress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": p}, "learning progress", nil)
}

// CourseProgress GET /api/learning/progress/:userId/course/:courseId
func (h *LearningHandler) CourseProgress(c *gin.Context) {
	p, err := h.Svc.CourseProgress(c.Request.Context(), c.Param("userId"), c.Param("courseId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "course progress", nil)
}

// CompleteSection POST /api/learning/progress/section; completed defaults to true.
func (h *LearningHandler) CompleteSection(c *gin.Context) {
	var req sectionProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	completed := req.Completed == nil || *req.Completed
	res, err := h.Svc.CompleteSection(c.Request.Context(), uid, req.SectionID, completed)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "progress saved", nil)
}
