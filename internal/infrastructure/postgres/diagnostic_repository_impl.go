package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

type DiagnosticRepository struct {
	db DB
}

func NewDiagnosticRepository(db DB) *DiagnosticRepository {
	return &DiagnosticRepository{db: db}
}

func (r *DiagnosticRepository) Questions(ctx context.Context) ([]entity.DiagnosticQuestion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_index, question, options
		FROM diagnostic_questions
		ORDER BY order_index
	`)
	if err != nil {
		return nil, wrap(err, "list questions")
	}
	defer rows.Close()

	out := []entity.DiagnosticQuestion{}
	for rows.Next() {
		var q entity.DiagnosticQuestion
		if err := rows.Scan(&q.ID, &q.OrderIndex, &q.Question, &q.Options); err != nil {
			return nil, wrap(err, "scan question")
		}
		out = append(out, q)
	}
	return out, wrap(rows.Err(), "list questions")
}

// Submit assigns the route and stage to the profile and stores the response
// in one transaction. A missing profile stores nothing.
func (r *DiagnosticRepository) Submit(ctx context.Context, d *entity.DiagnosticResponse) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `
			UPDATE profiles SET assigned_route = $1, business_stage = $2, updated_at = now()
			WHERE id = $3
		`, d.Route, d.Stage, d.UserID)
		if err != nil {
			return wrap(err, "set route")
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		row := tx.QueryRow(ctx, `
			INSERT INTO diagnostic_responses (user_id, answers, score, percentage, route, stage)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, d.UserID, d.Answers, d.Score, d.Percentage, d.Route, d.Stage)
		return wrap(row.Scan(&d.ID, &d.CreatedAt), "save diagnostic")
	})
}

func (r *DiagnosticRepository) LatestResponse(ctx context.Context, userID string) (*entity.DiagnosticResponse, error) {
	d := &entity.DiagnosticResponse{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, answers, score, percentage, route, stage, created_at
		FROM diagnostic_responses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&d.ID, &d.UserID, &d.Answers, &d.Score, &d.Percentage, &d.Route, &d.Stage, &d.CreatedAt)
	if err != nil {
		return nil, wrap(err, "latest diagnostic")
	}
	return d, nil
}

var _ repository.DiagnosticRepository = (*DiagnosticRepository)(nil)
