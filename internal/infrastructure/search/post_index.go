// Package search indexes community posts in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type PostIndex struct {
	es    *elasticsearch.Client
	index string
}

// NewPostIndex returns nil when search is not configured; a nil index indexes nothing.
func NewPostIndex(es *elasticsearch.Client, index string) *PostIndex {
	if es == nil || index == "" {
		return nil
	}
	return &PostIndex{es: es, index: index}
}

type postDoc struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *PostIndex) Enabled() bool { return p != nil }

func (p *PostIndex) Index(ctx context.Context, post *entity.Post) error {
	if p == nil {
		return nil
	}
	b, err := json.Marshal(postDoc{
		ID: post.ID, UserID: post.UserID, AuthorName: post.AuthorName, Title: post.Title,
		Content: post.Content, Category: post.Category, CreatedAt: post.CreatedAt,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: p.index, DocumentID: post.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, p.es)
	if err != nil {
		return errors.Wrap(err, "index post")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index post: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over title, content and author and returns post ids by relevance.
func (p *PostIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	if p == nil {
		return []string{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "content", "author_name"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := p.es.Search(p.es.Search.WithContext(c), p.es.Search.WithIndex(p.index), p.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, errors.Wrap(err, "search posts")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search posts: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "decode search")
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
