package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/internal/domain/certificate"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

type CertificateService interface {
	List(ctx context.Context, userID string) ([]app.CertificateView, error)
	Download(ctx context.Context, userID, moduleID string) (string, []byte, error)
	Verify(presented certificate.Presented) bool
	Mint(ctx context.Context, userID, moduleID string) (*app.MintResult, error)
}

type CertificateHandler struct {
	Svc    CertificateService
	Logger *logrus.Logger
}

func NewCertificateHandler(svc CertificateService, logger *logrus.Logger) *CertificateHandler {
	return &CertificateHandler{Svc: svc, Logger: logger}
}

// verifyRequest keeps cert as sent; decoding it into a Record first would
// drop unknown or duplicate keys before the digest is checked.
type verifyRequest struct {
	Cert json.RawMessage `json:"cert" binding:"required"`
	Hash string          `json:"hash" binding:"required"`
}

func (h *CertificateHandler) List(c *gin.Context) {
	v, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "certificates", nil)
}

// Download GET /api/certificates/:moduleId/download
func (h *CertificateHandler) Download(c *gin.Context) {
	name, body, err := h.Svc.Download(c.Request.Context(), c.GetString("userID"), c.Param("moduleId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json", body)
}

// Verify POST /api/certificates/verify. A mismatch is a normal answer, not an error.
func (h *CertificateHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	valid := h.Svc.Verify(certificate.Presented{Cert: req.Cert, Hash: req.Hash})
	response.Success(c, http.StatusOK, gin.H{"valid": valid}, "certificate checked", nil)
}

func (h *CertificateHandler) Mint(c *gin.Context) {
	res, err := h.Svc.Mint(c.Request.Context(), c.GetString("userID"), c.Param("moduleId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "certificate minted", nil)
}
