package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type CertificateRepository interface {
	Get(ctx context.Context, userID, moduleID string) (*entity.Certificate, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Certificate, error)
	// Create returns ErrConflict when the user already holds the module certificate.
	Create(ctx context.Context, c *entity.Certificate) error
	SetArchiveURL(ctx context.Context, id, url string) error
	GetMint(ctx context.Context, moduleID, wallet string) (*entity.NFTMint, error)
	CreateMint(ctx context.Context, m *entity.NFTMint) error
}
