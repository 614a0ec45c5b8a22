package repository

import (
	"context"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type AchievementRepository interface {
	List(ctx context.Context) ([]entity.Achievement, error)
	ListByTrigger(ctx context.Context, trigger string) ([]entity.Achievement, error)
	UserAchievements(ctx context.Context, userID string) ([]entity.UserAchievement, error)
	// RecordProgress stores progress for an achievement that is still locked.
	RecordProgress(ctx context.Context, userID, achievementID string, progress float64) error
	// Unlock marks the achievement unlocked and reports whether this call did it.
	Unlock(ctx context.Context, userID, achievementID string) (bool, error)
}
