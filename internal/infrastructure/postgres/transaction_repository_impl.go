package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const transactionColumns = `id, user_id, type, category, amount::float8, description, date, payment_method, created_at`

type TransactionRepository struct {
	db DB
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTransaction(row pgx.Row, t *entity.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Description, &t.Date, &t.PaymentMethod, &t.CreatedAt)
}

func (r *TransactionRepository) List(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date DESC, created_at DESC
	`, f.UserID, dateOrNil(f.From), dateOrNil(f.To))
	if err != nil {
		return nil, wrap(err, "list transactions")
	}
	defer rows.Close()

	out := []entity.Transaction{}
	for rows.Next() {
		var t entity.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, wrap(err, "scan transaction")
		}
		out = append(out, t)
	}
	return out, wrap(rows.Err(), "list transactions")
}

func (r *TransactionRepository) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	t := &entity.Transaction{}
	if err := scanTransaction(r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id), t); err != nil {
		return nil, wrap(err, "get transaction")
	}
	return t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, category, amount, description, date, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, t.UserID, t.Type, t.Category, t.Amount, t.Description, t.Date, t.PaymentMethod)
	return wrap(row.Scan(&t.ID, &t.CreatedAt), "create transaction")
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap(err, "delete transaction")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Count(ctx context.Context, userID string) (int, error) {
	return count(ctx, r.db, "count transactions", `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID)
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
