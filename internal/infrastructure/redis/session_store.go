// Package redisstore keeps login sessions and short-lived caches in Redis.
package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// SessionStore persists the per-user session hash. The hash is the
// server-side home of the cached identity and the linked wallet.
type SessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSessionStore(rdb redis.Cmdable, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Create replaces any previous session of the user.
func (s *SessionStore) Create(ctx context.Context, sess entity.Session) error {
	key := sessionKey(sess.UserID)
	if sess.CreatedAt == "" {
		sess.CreatedAt = helpers.NowRFC3339()
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":        sess.UserID,
		"email":          sess.Email,
		"name":           sess.Name,
		"avatar_url":     sess.AvatarURL,
		"sid":            sess.SID,
		"provider":       sess.Provider,
		"wallet_address": sess.WalletAddress,
		"logged_in":      true,
		"created_at":     sess.CreatedAt,
	})
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return errors.Wrap(err, "create session")
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*entity.Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "get session")
	}
	if len(data) == 0 {
		return nil, repository.ErrSessionNotFound
	}
	return &entity.Session{
		UserID:        data["user_id"],
		Email:         data["email"],
		Name:          data["name"],
		AvatarURL:     data["avatar_url"],
		SID:           data["sid"],
		Provider:      data["provider"],
		WalletAddress: data["wallet_address"],
		CreatedAt:     data["created_at"],
	}, nil
}

// RotateSID swaps the session id and restarts the TTL.
func (s *SessionStore) RotateSID(ctx context.Context, userID, sid string) error {
	key := sessionKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{"sid": sid, "updated_at": helpers.NowRFC3339()})
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return errors.Wrap(err, "rotate session")
}

// UpdateIdentity refreshes the cached display identity.
func (s *SessionStore) UpdateIdentity(ctx context.Context, userID, name, avatarURL string) error {
	return s.update(ctx, userID, map[string]any{"name": name, "avatar_url": avatarURL})
}

func (s *SessionStore) SetWallet(ctx context.Context, userID, wallet string) error {
	return s.update(ctx, userID, map[string]any{"wallet_address": wallet})
}

func (s *SessionStore) ClearWallet(ctx context.Context, userID string) error {
	return s.update(ctx, userID, map[string]any{"wallet_address": ""})
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return errors.Wrap(s.rdb.Del(ctx, sessionKey(userID)).Err(), "delete session")
}

// update writes fields of a live session and keeps its remaining TTL.
func (s *SessionStore) update(ctx context.Context, userID string, fields map[string]any) error {
	key := sessionKey(userID)
	ttl, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return errors.Wrap(err, "session ttl")
	}
	if ttl == -2 {
		return repository.ErrSessionNotFound
	}
	fields["updated_at"] = helpers.NowRFC3339()
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err = pipe.Exec(ctx)
	return errors.Wrap(err, "update session")
}
