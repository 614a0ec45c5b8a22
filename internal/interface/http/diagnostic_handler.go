package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type DiagnosticService interface {
	Questions(ctx context.Context) ([]entity.DiagnosticQuestion, error)
	Submit(ctx context.Context, userID string, answers []int) (diagnostic.Result, error)
	Latest(ctx context.Context, userID string) (diagnostic.Result, error)
}

type DiagnosticHandler struct {
	Svc    DiagnosticService
	Logger *logrus.Logger
}

func NewDiagnosticHandler(svc DiagnosticService, logger *logrus.Logger) *DiagnosticHandler {
	return &DiagnosticHandler{Svc: svc, Logger: logger}
}

type submitDiagnosticRequest struct {
	Answers []int `json:"answers" binding:"required,len=5,dive,gte=0,lte=3"`
}

func (h *DiagnosticHandler) Questions(c *gin.Context) {
	qs, err := h.Svc.Questions(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, qs, "diagnostic questions", nil)
}

func (h *DiagnosticHandler) Submit(c *gin.Context) {
	var req submitDiagnosticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Svc.Submit(c.Request.Context(), c.GetString("userID"), req.Answers)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "diagnostic scored", nil)
}

func (h *DiagnosticHandler) Result(c *gin.Context) {
	res, err := h.Svc.Latest(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "diagnostic result", nil)
}
