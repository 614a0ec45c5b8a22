package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const searchLimit = 20

var postCategories = []string{"experiencia", "pregunta", "consejo", "logro"}

type CommunityService struct {
	Posts        repo.PostRepository
	Index        PostIndex
	Achievements AchievementChecker
	Logger       *logrus.Logger
}

func NewCommunityService(posts repo.PostRepository, index PostIndex, achievements AchievementChecker, logger *logrus.Logger) *CommunityService {
	return &CommunityService{Posts: posts, Index: index, Achievements: achievements, Logger: logger}
}

func (s *CommunityService) List(ctx context.Context, category string) ([]entity.Post, error) {
	return s.Posts.List(ctx, category)
}

func (s *CommunityService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// Search queries the full-text index. Without one it falls back to a
// case-insensitive match on title and content.
func (s *CommunityService) Search(ctx context.Context, q string) ([]entity.Post, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Post{}, nil
	}
	if !s.Index.Enabled() {
		return s.scan(ctx, q)
	}
	ids, err := s.Index.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Post, 0, len(ids))
	for _, id := range ids {
		p, err := s.Posts.Get(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *CommunityService) scan(ctx context.Context, q string) ([]entity.Post, error) {
	all, err := s.Posts.List(ctx, "")
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := []entity.Post{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Content), needle) {
			out = append(out, p)
			if len(out) == searchLimit {
				break
			}
		}
	}
	return out, nil
}

type CreatePostInput struct {
	UserID   string
	Title    string
	Content  string
	Category string
}

type PostResult struct {
	Post                 *entity.Post          `json:"post"`
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
}

func (s *CommunityService) Create(ctx context.Context, in CreatePostInput) (*PostResult, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultPostCategory
	}
	if !slices.Contains(postCategories, category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	p := &entity.Post{
		UserID:   in.UserID,
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		Category: category,
	}
	if p.Title == "" || p.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.Logger.WithError(err).WithField("post_id", p.ID).Warn("index post failed")
	}

	res := &PostResult{Post: p, UnlockedAchievements: []UnlockedAchievement{}}
	if n, err := s.Posts.CountByUser(ctx, in.UserID); err != nil {
		s.Logger.WithError(err).Warn("count posts failed")
	} else {
		res.UnlockedAchievements = s.check(ctx, in.UserID, entity.TriggerPostCreated, n)
	}
	return res, nil
}

type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

func (s *CommunityService) ToggleLike(ctx context.Context, postID, userID string) (*LikeState, error) {
	liked, likes, err := s.Posts.ToggleLike(ctx, postID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, LikesCount: likes}, nil
}

type LikesView struct {
	LikesCount int  `json:"likes_count"`
	UserLiked  bool `json:"user_liked"`
}

func (s *CommunityService) Likes(ctx context.Context, postID, userID string) (*LikesView, error) {
	likes, mine, err := s.Posts.Likes(ctx, postID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &LikesView{LikesCount: likes, UserLiked: mine}, nil
}

func (s *CommunityService) Comments(ctx context.Context, postID string) ([]entity.Comment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.Posts.ListComments(ctx, postID)
}

type CommentResult struct {
	Comment              *entity.Comment       `json:"comment"`
	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
}

func (s *CommunityService) AddComment(ctx context.Context, postID, userID, content string) (*CommentResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	c := &entity.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.Posts.AddComment(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	res := &CommentResult{Comment: c, UnlockedAchievements: []UnlockedAchievement{}}
	if n, err := s.Posts.CountCommentsByUser(ctx, userID); err != nil {
		s.Logger.WithError(err).Warn("count comments failed")
	} else {
		res.UnlockedAchievements = s.check(ctx, userID, entity.TriggerCommentCreated, n)
	}
	return res, nil
}

func (s *CommunityService) check(ctx context.Context, userID, trigger string, value int) []UnlockedAchievement {
	got, err := s.Achievements.Check(ctx, userID, trigger, value)
	if err != nil {
		s.Logger.WithError(err).WithField("trigger", trigger).Error("achievement check failed")
		return []UnlockedAchievement{}
	}
	return got
}
