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

type CommunityService interface {
	List(ctx context.Context, category string) ([]entity.Post, error)
	Search(ctx context.Context, q string) ([]entity.Post, error)
	Create(ctx context.Context, in app.CreatePostInput) (*app.PostResult, error)
	ToggleLike(ctx context.Context, postID, userID string) (*app.LikeState, error)
	Likes(ctx context.Context, postID, userID string) (*app.LikesView, error)
	Comments(ctx context.Context, postID string) ([]entity.Comment, error)
	AddComment(ctx context.Context, postID, userID, content string) (*app.CommentResult, error)
}

type CommunityHandler struct {
	Svc    CommunityService
	Logger *logrus.Logger
}

func NewCommunityHandler(svc CommunityService, logger *logrus.Logger) *CommunityHandler {
	return &CommunityHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	UserID   string `json:"user_id"`
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required,max=5000"`
	Category string `json:"category" binding:"omitempty,postcategory"`
}

type userBody struct {
	UserID string `json:"user_id"`
}

type commentRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *CommunityHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", nil)
}

func (h *CommunityHandler) Search(c *gin.Context) {
	posts, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "search results", nil)
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), app.CreatePostInput{UserID: uid, Title: req.Title, Content: req.Content, Category: req.Category})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "post created", nil)
}

// ToggleLike POST /api/community/posts/:id/like; the body is optional.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	var req userBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	st, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "like toggled", nil)
}

func (h *CommunityHandler) Likes(c *gin.Context) {
	uid, ok := bodyUser(c, c.Query("user_id"))
	if !ok {
		return
	}
	v, err := h.Svc.Likes(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "likes", nil)
}

func (h *CommunityHandler) Comments(c *gin.Context) {
	cs, err := h.Svc.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cs, "comments", nil)
}

func (h *CommunityHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, ok := bodyUser(c, req.UserID)
	if !ok {
		return
	}
	res, err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), uid, req.Content)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "comment added", nil)
}
