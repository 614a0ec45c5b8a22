package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

// ProfileRepository defines persistence for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	// AddPoints increments total_points, recomputes level and returns the updated profile.
	AddPoints(ctx context.Context, userID string, points int) (*entity.Profile, error)
}
