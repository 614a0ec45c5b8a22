package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type PostRepository interface {
	List(ctx context.Context, category string) ([]entity.Post, error)
	Get(ctx context.Context, id string) (*entity.Post, error)
	Create(ctx context.Context, p *entity.Post) error
	CountByUser(ctx context.Context, userID string) (int, error)
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likes int, err error)
	Likes(ctx context.Context, postID, userID string) (likes int, userLiked bool, err error)
	ListComments(ctx context.Context, postID string) ([]entity.Comment, error)
	AddComment(ctx context.Context, c *entity.Comment) error
	CountCommentsByUser(ctx context.Context, userID string) (int, error)
}
