package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type DiagnosticRepository interface {
	Questions(ctx context.Context) ([]entity.DiagnosticQuestion, error)
	// Submit stores the response and assigns its route and stage to the
	// profile atomically. It fails with ErrNotFound for an unknown profile.
	Submit(ctx context.Context, r *entity.DiagnosticResponse) error
	LatestResponse(ctx context.Context, userID string) (*entity.DiagnosticResponse, error)
}
