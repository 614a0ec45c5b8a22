package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const postSelect = `
	SELECT p.id, p.user_id, COALESCE(pr.full_name, ''), p.title, p.content, p.category,
	       p.likes_count, p.comments_count, p.created_at, p.updated_at
	FROM posts p
	LEFT JOIN profiles pr ON pr.id = p.user_id`

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row pgx.Row, p *entity.Post) error {
	return row.Scan(&p.ID, &p.UserID, &p.AuthorName, &p.Title, &p.Content, &p.Category,
		&p.LikesCount, &p.CommentsCount, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) List(ctx context.Context, category string) ([]entity.Post, error) {
	rows, err := r.db.Query(ctx, postSelect+`
		WHERE ($1 = '' OR p.category = $1)
		ORDER BY p.created_at DESC
	`, category)
	if err != nil {
		return nil, wrap(err, "list posts")
	}
	defer rows.Close()

	out := []entity.Post{}
	for rows.Next() {
		var p entity.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, wrap(err, "scan post")
		}
		out = append(out, p)
	}
	return out, wrap(rows.Err(), "list posts")
}

func (r *PostRepository) Get(ctx context.Context, id string) (*entity.Post, error) {
	p := &entity.Post{}
	if err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id), p); err != nil {
		return nil, wrap(err, "get post")
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.db.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO posts (user_id, title, content, category)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, created_at, updated_at
		)
		SELECT ins.id, COALESCE(pr.full_name, ''), ins.created_at, ins.updated_at
		FROM ins LEFT JOIN profiles pr ON pr.id = ins.user_id
	`, p.UserID, p.Title, p.Content, p.Category)
	return wrap(row.Scan(&p.ID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt), "create post")
}

func (r *PostRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	return count(ctx, r.db, "count posts", `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID)
}

// ToggleLike flips the user's like and keeps posts.likes_count in step.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	var liked bool
	var likes int
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT likes_count FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&likes); err != nil {
			return wrap(err, "lock post")
		}
		res, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return wrap(err, "unlike post")
		}
		delta := -1
		if res.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
				return wrap(err, "like post")
			}
			liked, delta = true, 1
		}
		return wrap(tx.QueryRow(ctx, `
			UPDATE posts SET likes_count = GREATEST(likes_count + $1, 0) WHERE id = $2
			RETURNING likes_count
		`, delta, postID).Scan(&likes), "update likes")
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}

func (r *PostRepository) Likes(ctx context.Context, postID, userID string) (int, bool, error) {
	var likes int
	var userLiked bool
	err := r.db.QueryRow(ctx, `
		SELECT p.likes_count,
		       EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.user_id::text = $2)
		FROM posts p
		WHERE p.id = $1
	`, postID, userID).Scan(&likes, &userLiked)
	if err != nil {
		return 0, false, wrap(err, "post likes")
	}
	return likes, userLiked, nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]entity.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.post_id, c.user_id, COALESCE(pr.full_name, ''), c.content, c.created_at
		FROM comments c
		LEFT JOIN profiles pr ON pr.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`, postID)
	if err != nil {
		return nil, wrap(err, "list comments")
	}
	defer rows.Close()

	out := []entity.Comment{}
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, wrap(err, "scan comment")
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err(), "list comments")
}

// AddComment inserts the comment and bumps posts.comments_count.
func (r *PostRepository) AddComment(ctx context.Context, c *entity.Comment) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`, c.PostID)
		if err != nil {
			return wrap(err, "bump comments")
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return wrap(tx.QueryRow(ctx, `
			INSERT INTO comments (post_id, user_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, COALESCE((SELECT full_name FROM profiles WHERE id = $2), '')
		`, c.PostID, c.UserID, c.Content).Scan(&c.ID, &c.CreatedAt, &c.AuthorName), "create comment")
	})
}

func (r *PostRepository) CountCommentsByUser(ctx context.Context, userID string) (int, error) {
	return count(ctx, r.db, "count comments", `SELECT COUNT(*) FROM comments WHERE user_id = $1`, userID)
}

var _ repository.PostRepository = (*PostRepository)(nil)
