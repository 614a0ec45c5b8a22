package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const achievementColumns = `id, code, name, description, icon, points, category, trigger_type, threshold`

type AchievementRepository struct {
	db DB
}

func NewAchievementRepository(db DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) List(ctx context.Context) ([]entity.Achievement, error) {
	return r.query(ctx, "list achievements", `SELECT `+achievementColumns+` FROM achievements ORDER BY category, threshold, code`)
}

func (r *AchievementRepository) ListByTrigger(ctx context.Context, trigger string) ([]entity.Achievement, error) {
	return r.query(ctx, "list achievements by trigger",
		`SELECT `+achievementColumns+` FROM achievements WHERE trigger_type = $1 ORDER BY threshold, code`, trigger)
}

func (r *AchievementRepository) query(ctx context.Context, op, sql string, args ...any) ([]entity.Achievement, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(err, op)
	}
	defer rows.Close()

	out := []entity.Achievement{}
	for rows.Next() {
		var a entity.Achievement
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.Icon, &a.Points, &a.Category, &a.TriggerType, &a.Threshold); err != nil {
			return nil, wrap(err, "scan achievement")
		}
		out = append(out, a)
	}
	return out, wrap(rows.Err(), op)
}

func (r *AchievementRepository) UserAchievements(ctx context.Context, userID string) ([]entity.UserAchievement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, achievement_id, progress, unlocked, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, wrap(err, "user achievements")
	}
	defer rows.Close()

	out := []entity.UserAchievement{}
	for rows.Next() {
		var ua entity.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.Progress, &ua.Unlocked, &ua.UnlockedAt); err != nil {
			return nil, wrap(err, "scan user achievement")
		}
		out = append(out, ua)
	}
	return out, wrap(rows.Err(), "user achievements")
}

func (r *AchievementRepository) RecordProgress(ctx context.Context, userID, achievementID string, progress float64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id, progress)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO UPDATE
		SET progress = GREATEST(user_achievements.progress, EXCLUDED.progress)
		WHERE NOT user_achievements.unlocked
	`, userID, achievementID, progress)
	return wrap(err, "record achievement progress")
}

func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID string) (bool, error) {
	var unlocked bool
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id, progress, unlocked, unlocked_at)
		VALUES ($1, $2, 100, TRUE, now())
		ON CONFLICT (user_id, achievement_id) DO UPDATE
		SET progress = 100, unlocked = TRUE, unlocked_at = now()
		WHERE NOT user_achievements.unlocked
		RETURNING unlocked
	`, userID, achievementID).Scan(&unlocked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrap(err, "unlock achievement")
	}
	return unlocked, nil
}

var _ repository.AchievementRepository = (*AchievementRepository)(nil)
