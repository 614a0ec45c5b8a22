package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestCookie_RefreshScopedToAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	now := time.Now()
	NewCookie("localhost", true).SetPair(c, "acc", now.Add(15*time.Minute), "ref", now.Add(24*time.Hour))

	byName := map[string]*http.Cookie{}
	for _, ck := range w.Result().Cookies() {
		byName[ck.Name] = ck
	}
	require.Contains(t, byName, AccessCookie)
	require.Contains(t, byName, RefreshCookie)

	assert.Equal(t, "/", byName[AccessCookie].Path)
	assert.Equal(t, http.SameSiteLaxMode, byName[AccessCookie].SameSite)
	assert.Equal(t, RefreshPath, byName[RefreshCookie].Path)
	assert.Equal(t, http.SameSiteStrictMode, byName[RefreshCookie].SameSite)
	assert.True(t, byName[RefreshCookie].HttpOnly)
	assert.True(t, byName[RefreshCookie].Secure)
	assert.Greater(t, byName[RefreshCookie].MaxAge, byName[AccessCookie].MaxAge)
}

func TestCookie_ClearExpiresBoth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewCookie("", false).Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.Empty(t, ck.Value)
		assert.Negative(t, ck.MaxAge, ck.Name)
	}
}

func TestRedisJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(RedisConfig{Addr: mr.Addr()})
	ctx := context.Background()

	type kpi struct {
		Year  int     `json:"year"`
		Total float64 `json:"total"`
	}

	var got kpi
	ok, err := RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, RedisSetJSON(ctx, rdb, "k", kpi{Year: 2025, Total: 1500.5}, time.Minute))
	ok, err = RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, kpi{Year: 2025, Total: 1500.5}, got)

	// foreign payloads are dropped and read as a miss
	mr.Set("bad", "{not json")
	ok, err = RedisGetJSON(ctx, rdb, "bad", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("bad"))

	require.NoError(t, RedisDel(ctx, rdb))
	require.NoError(t, RedisDel(ctx, rdb, "k", "missing"))
	assert.False(t, mr.Exists("k"))
}

func TestGCSStore_Disabled(t *testing.T) {
	var nilStore *GCSStore
	_, err := nilStore.Upload(context.Background(), "a/b.json", "application/json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, err = NewGCSStore(nil, "bucket").Upload(context.Background(), "a/b.json", "application/json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestGCS_PreconditionFailedMeansStored(t *testing.T) {
	wrapped := fmt.Errorf("close writer: %w", &googleapi.Error{Code: http.StatusPreconditionFailed})
	assert.True(t, isPreconditionFailed(wrapped))
	assert.False(t, isPreconditionFailed(&googleapi.Error{Code: http.StatusForbidden}))
	assert.Equal(t, "https://storage.googleapis.com/b/certificates/u1/M1.json", PublicURL("b", "certificates/u1/M1.json"))
}

func TestJWT_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	refresh, rexp, err := m.GenerateRefreshToken("u1", "s1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), rexp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)
}

func TestFederatedToken(t *testing.T) {
	secret := []byte("bridge")
	tok, err := SignFederatedToken(FederatedClaims{Email: "ana@example.com", Name: "Ana"}, secret)
	require.NoError(t, err)

	c, err := ParseFederatedToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", c.Email)

	_, err = ParseFederatedToken(tok, []byte("other"))
	assert.Error(t, err)
	_, err = ParseFederatedToken(tok, nil)
	assert.Error(t, err)
}

func TestPasswordAndDates(t *testing.T) {
	hash, err := HashPassword("emprende123")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "emprende123"))
	assert.False(t, CompareHashAndPassword(hash, "emprende124"))

	d, ok := ParseDate("2025-03-01")
	assert.True(t, ok)
	assert.Equal(t, time.March, d.Month())
	_, ok = ParseDate("")
	assert.True(t, ok)
	_, ok = ParseDate("01/03/2025")
	assert.False(t, ok)
}
