package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/finance"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type FinanceService interface {
	List(ctx context.Context, f repo.TransactionFilter) ([]entity.Transaction, error)
	Create(ctx context.Context, in app.CreateTransactionInput) (*app.CreateTransactionResult, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string, months int) ([]finance.MonthSummary, error)
	KPIs(ctx context.Context, userID string, year int) (*finance.KPIs, error)
}

type FinanceHandler struct {
	Svc    FinanceService
	Logger *logrus.Logger
}

func NewFinanceHandler(svc FinanceService, logger *logrus.Logger) *FinanceHandler {
	return &FinanceHandler{Svc: svc, Logger: logger}
}

type transactionsQuery struct {
	UserID    string `form:"user_id"`
	StartDate string `form:"start_date" binding:"omitempty,ymd"`
	EndDate   string `form:"end_date" binding:"omitempty,ymd"`
}

type createTransactionRequest struct {
	UserID        string  `json:"user_id"`
	Type          string  `json:"type" binding:"required,txtype"`
	Category      string  `json:"category" binding:"required"`
	Amount        float64 `json:"amount" binding:"gt=0"`
	Description   string  `json:"description" binding:"max=500"`
	Date          string  `json:"date" binding:"omitempty,ymd"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=efectivo transferencia tarjeta otro"`
}

type summaryQuery struct {
	Months int `form:"months" binding:"omitempty,gte=1,lte=24"`
}

type kpiQuery struct {
	Year int `form:"year" binding:"omitempty,gte=2000,lte=2100"`
}

func (h *FinanceHandler) List(c *gin.Context) {
	var q transactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	uid, ok := bodyUser(c, q.UserID)
	if !ok {
		return
	}
	from, _ := helpers.ParseDate(q.StartDate)
	to, _ := helpers.ParseDate(q.EndDate)
	txs, err := h.Svc.List(c.Request.Context(), repo.TransactionFilter{UserID: uid, From: from, To: to})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, txs, "transactions", nil)
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), app.CreateTransactionInput{
		UserID:        uid,
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "transaction created", nil)
}

func (h *FinanceHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "transaction deleted", nil)
}

// Summary GET /api/finance/summary/:userId?months=6
func (h *FinanceHandler) Summary(c *gin.Context) {
	var q summaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Svc.Summary(c.Request.Context(), c.Param("userId"), q.Months)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "monthly summary", nil)
}

// KPIs GET /api/finance/kpis/:userId?year=
func (h *FinanceHandler) KPIs(c *gin.Context) {
	var q kpiQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	k, err := h.Svc.KPIs(c.Request.Context(), c.Param("userId"), q.Year)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, k, "kpis", nil)
}
