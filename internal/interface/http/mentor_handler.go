package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type MentorService interface {
	Available(ctx context.Context) ([]entity.Mentor, error)
	Assignment(ctx context.Context, userID string) (*entity.MentorAssignment, error)
	Messages(ctx context.Context, userID string) ([]entity.MentorMessage, error)
	Send(ctx context.Context, userID, content string) (*entity.MentorMessage, error)
}

type MentorHandler struct {
	Svc    MentorService
	Logger *logrus.Logger
}

func NewMentorHandler(svc MentorService, logger *logrus.Logger) *MentorHandler {
	return &MentorHandler{Svc: svc, Logger: logger}
}

type mentorMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *MentorHandler) Available(c *gin.Context) {
	ms, err := h.Svc.Available(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ms, "mentors", nil)
}

func (h *MentorHandler) Assignment(c *gin.Context) {
	a, err := h.Svc.Assignment(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "mentor assignment", nil)
}

func (h *MentorHandler) Messages(c *gin.Context) {
	ms, err := h.Svc.Messages(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ms, "messages", nil)
}

func (h *MentorHandler) Send(c *gin.Context) {
	var req mentorMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.Svc.Send(c.Request.Context(), c.GetString("userID"), req.Content)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "message sent", nil)
}
