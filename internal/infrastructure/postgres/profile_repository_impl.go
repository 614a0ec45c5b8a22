package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const profileColumns = `id, email, password_hash, provider, full_name, avatar_url, age, city,
	business_name, business_sector, phone, bio, assigned_route, business_stage,
	current_month, level, total_points, created_at, updated_at`

type ProfileRepository struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.Password, &p.Provider, &p.FullName, &p.AvatarURL, &p.Age, &p.City,
		&p.BusinessName, &p.BusinessSector, &p.Phone, &p.Bio, &p.AssignedRoute, &p.BusinessStage,
		&p.CurrentMonth, &p.Level, &p.TotalPoints, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	if p.Provider == "" {
		p.Provider = entity.ProviderPassword
	}
	if p.BusinessStage == "" {
		p.BusinessStage = entity.StagePending
	}
	if p.CurrentMonth == 0 {
		p.CurrentMonth = 1
	}
	p.Level = entity.LevelFor(p.TotalPoints)

	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles (email, password_hash, provider, full_name, avatar_url, business_stage, current_month, level, total_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.Email, p.Password, p.Provider, p.FullName, p.AvatarURL, p.BusinessStage, p.CurrentMonth, p.Level, p.TotalPoints)

	return wrap(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt), "create profile")
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err, "get profile")
	}
	return p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, wrap(err, "get profile by email")
	}
	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2, age = $3, city = $4, business_name = $5,
		    business_sector = $6, phone = $7, bio = $8, provider = $9, updated_at = $10
		WHERE id = $11
	`, p.FullName, p.AvatarURL, p.Age, p.City, p.BusinessName,
		p.BusinessSector, p.Phone, p.Bio, p.Provider, p.UpdatedAt, p.ID)
	if err != nil {
		return wrap(err, "update profile")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) AddPoints(ctx context.Context, userID string, points int) (*entity.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `
		UPDATE profiles
		SET total_points = total_points + $1,
		    level = (total_points + $1) / 100 + 1,
		    updated_at = now()
		WHERE id = $2
		RETURNING `+profileColumns, points, userID))
	if err != nil {
		return nil, wrap(err, "add points")
	}
	return p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
