package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *PostIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewPostIndex(es, "posts")
}

func TestPostIndex_Index(t *testing.T) {
	var gotPath string
	var doc map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &doc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.Index(context.Background(), &entity.Post{ID: "p1", Title: "Mi primera venta", Category: "logro"})
	require.NoError(t, err)
	assert.Equal(t, "/posts/_doc/p1", gotPath)
	assert.Equal(t, "Mi primera venta", doc["title"])
}

func TestPostIndex_SearchReturnsIDs(t *testing.T) {
	var query string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		query = string(b)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"p2"},{"_id":"p1"}]}}`))
	})

	ids, err := idx.Search(context.Background(), "ventas", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, ids)
	assert.True(t, strings.Contains(query, `"multi_match"`))
	assert.True(t, strings.Contains(query, `"size":20`))
}

func TestPostIndex_Disabled(t *testing.T) {
	idx := NewPostIndex(nil, "posts")
	assert.False(t, idx.Enabled())
	assert.NoError(t, idx.Index(context.Background(), &entity.Post{ID: "p1"}))
	ids, err := idx.Search(context.Background(), "x", 5)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}
