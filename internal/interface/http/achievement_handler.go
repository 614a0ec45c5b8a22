package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type AchievementService interface {
	CheckReported(ctx context.Context, userID, trigger string, reported int) ([]app.UnlockedAchievement, error)
	ForUser(ctx context.Context, userID string) ([]app.AchievementView, error)
	Stats(ctx context.Context, userID string) (*app.AchievementStats, error)
}

type AchievementHandler struct {
	Svc    AchievementService
	Logger *logrus.Logger
}

func NewAchievementHandler(svc AchievementService, logger *logrus.Logger) *AchievementHandler {
	return &AchievementHandler{Svc: svc, Logger: logger}
}

type checkAchievementsRequest struct {
	Type  string `json:"type" binding:"required"`
	Value int    `json:"value" binding:"gte=0"`
}

// Check POST /api/achievements/check/:userId
func (h *AchievementHandler) Check(c *gin.Context) {
	var req checkAchievementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	got, err := h.Svc.CheckReported(c.Request.Context(), c.Param("userId"), req.Type, req.Value)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unlocked": got}, "achievements checked", nil)
}

func (h *AchievementHandler) ForUser(c *gin.Context) {
	v, err := h.Svc.ForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "achievements", nil)
}

func (h *AchievementHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "achievement stats", nil)
}
