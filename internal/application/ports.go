package application

import (
	"context"
	"io"
	"time"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

// SessionStore holds the server-side session context of logged-in users.
type SessionStore interface {
	Create(ctx context.Context, sess entity.Session) error
	Get(ctx context.Context, userID string) (*entity.Session, error)
	RotateSID(ctx context.Context, userID, sid string) error
	UpdateIdentity(ctx context.Context, userID, name, avatarURL string) error
	SetWallet(ctx context.Context, userID, wallet string) error
	ClearWallet(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType, userID string, payload any)
}

type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// PostIndex is the full-text index of community posts. A disabled index
// accepts writes and finds nothing.
type PostIndex interface {
	Enabled() bool
	Index(ctx context.Context, post *entity.Post) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// EmailQueue accepts mailer.EmailJob values for the notification worker.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// AchievementChecker evaluates unlock rules after a user action.
type AchievementChecker interface {
	Check(ctx context.Context, userID, trigger string, value int) ([]UnlockedAchievement, error)
}

// CertificateIssuer issues a module certificate once every course of the module is complete.
type CertificateIssuer interface {
	IssueIfComplete(ctx context.Context, userID, moduleID string) (*CertificateView, error)
}
