package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	"github.com/emprendevoz/emprende-api/internal/domain/repository"
)

const certificateColumns = `id, user_id, module_id, payload, hash, archive_url, issued_at`

type CertificateRepository struct {
	db DB
}

func NewCertificateRepository(db DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func scanCertificate(row pgx.Row, c *entity.Certificate) error {
	return row.Scan(&c.ID, &c.UserID, &c.ModuleID, &c.Payload, &c.Hash, &c.ArchiveURL, &c.IssuedAt)
}

func (r *CertificateRepository) Get(ctx context.Context, userID, moduleID string) (*entity.Certificate, error) {
	c := &entity.Certificate{}
	err := scanCertificate(r.db.QueryRow(ctx, `
		SELECT `+certificateColumns+`
		FROM certificates
		WHERE user_id = $1 AND module_id = $2
	`, userID, moduleID), c)
	if err != nil {
		return nil, wrap(err, "get certificate")
	}
	return c, nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID string) ([]entity.Certificate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+certificateColumns+`
		FROM certificates
		WHERE user_id = $1
		ORDER BY module_id
	`, userID)
	if err != nil {
		return nil, wrap(err, "list certificates")
	}
	defer rows.Close()

	out := []entity.Certificate{}
	for rows.Next() {
		var c entity.Certificate
		if err := scanCertificate(rows, &c); err != nil {
			return nil, wrap(err, "scan certificate")
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err(), "list certificates")
}

func (r *CertificateRepository) Create(ctx context.Context, c *entity.Certificate) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO certificates (user_id, module_id, payload, hash, issued_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, module_id) DO NOTHING
		RETURNING id
	`, c.UserID, c.ModuleID, c.Payload, c.Hash, c.IssuedAt)
	err := row.Scan(&c.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrConflict
	}
	return wrap(err, "create certificate")
}

func (r *CertificateRepository) SetArchiveURL(ctx context.Context, id, url string) error {
	_, err := r.db.Exec(ctx, `UPDATE certificates SET archive_url = $1 WHERE id = $2`, url, id)
	return wrap(err, "set archive url")
}

func (r *CertificateRepository) GetMint(ctx context.Context, moduleID, wallet string) (*entity.NFTMint, error) {
	m := &entity.NFTMint{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, module_id, wallet_address, token_id, certificate_hash, minted_at
		FROM nft_mints
		WHERE module_id = $1 AND lower(wallet_address) = lower($2)
	`, moduleID, wallet).Scan(&m.ID, &m.UserID, &m.ModuleID, &m.WalletAddress, &m.TokenID, &m.CertificateHash, &m.MintedAt)
	if err != nil {
		return nil, wrap(err, "get mint")
	}
	return m, nil
}

func (r *CertificateRepository) CreateMint(ctx context.Context, m *entity.NFTMint) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO nft_mints (user_id, module_id, wallet_address, token_id, certificate_hash, minted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, m.UserID, m.ModuleID, m.WalletAddress, m.TokenID, m.CertificateHash, m.MintedAt)
	return wrap(row.Scan(&m.ID), "create mint")
}

var _ repository.CertificateRepository = (*CertificateRepository)(nil)
