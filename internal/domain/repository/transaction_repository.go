package repository

import (
	"context"
	"time"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

// TransactionFilter bounds are inclusive dates; zero values are open.
type TransactionFilter struct {
	UserID string
	From   time.Time
	To     time.Time
}

type TransactionRepository interface {
	List(ctx context.Context, f TransactionFilter) ([]entity.Transaction, error)
	Get(ctx context.Context, id string) (*entity.Transaction, error)
	Create(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, id, userID string) error
	Count(ctx context.Context, userID string) (int, error)
}
