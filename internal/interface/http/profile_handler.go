package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/pkg/response"
)

const maxAvatarBytes = 5 << 20

type ProfileService interface {
	Get(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, userID string, in app.UpdateProfileInput) (*entity.Profile, error)
	UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
	Stats(ctx context.Context, userID string) (*app.ProfileStats, error)
	Session(ctx context.Context, userID string) (*entity.Session, error)
	SetWallet(ctx context.Context, userID, wallet string) (*entity.Session, error)
	ClearWallet(ctx context.Context, userID string) error
}

type ProfileHandler struct {
	Svc    ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FullName       *string `json:"full_name" binding:"omitempty,max=120"`
	Age            *int    `json:"age" binding:"omitempty,gte=0,lte=120"`
	City           *string `json:"city" binding:"omitempty,max=120"`
	BusinessSector *string `json:"business_sector" binding:"omitempty,max=120"`
	BusinessName   *string `json:"business_name" binding:"omitempty,max=160"`
	Phone          *string `json:"phone" binding:"omitempty,max=40"`
	Bio            *string `json:"bio" binding:"omitempty,max=2000"`
}

type walletRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,wallet"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), app.UpdateProfileInput{
		FullName:       req.FullName,
		Age:            req.Age,
		City:           req.City,
		BusinessSector: req.BusinessSector,
		BusinessName:   req.BusinessName,
		Phone:          req.Phone,
		Bio:            req.Bio,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "file")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "profile stats", nil)
}

func (h *ProfileHandler) Session(c *gin.Context) {
	s, err := h.Svc.Session(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, s, "session", nil)
}

func (h *ProfileHandler) SetWallet(c *gin.Context) {
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.Svc.SetWallet(c.Request.Context(), c.GetString("userID"), req.WalletAddress)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, s, "wallet connected", nil)
}

func (h *ProfileHandler) ClearWallet(c *gin.Context) {
	if err := h.Svc.ClearWallet(c.Request.Context(), c.GetString("userID")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"wallet_address": ""}, "wallet disconnected", nil)
}
