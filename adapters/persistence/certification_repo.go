package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresCertificationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCertificationRepo(db *pgxpool.Pool, log logger.Logger) certification.Repository {
	return &postgresCertificationRepo{db: db, logger: log}
}

const certificationColumns = `id, title, issuer, issue_date, credential_id, credential_url, sort_order, created_at`

func scanCertification(row pgx.Row) (*certification.Certification, error) {
	c := &certification.Certification{}
	err := row.Scan(&c.ID, &c.Title, &c.Issuer, &c.IssueDate, &c.CredentialID, &c.CredentialURL, &c.Order, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, certification.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan certification row", err)
	}
	return c, nil
}

func (r *postgresCertificationRepo) Save(ctx context.Context, c *certification.Certification) error {
	query := `
		INSERT INTO certifications (id, title, issuer, issue_date, credential_id, credential_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		c.ID, c.Title, c.Issuer, c.IssueDate, c.CredentialID, c.CredentialURL, c.Order, c.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save certification", err)
	}
	return nil
}

func (r *postgresCertificationRepo) Update(ctx context.Context, c *certification.Certification) error {
	query := `
		UPDATE certifications SET
			title = $2, issuer = $3, issue_date = $4, credential_id = $5, credential_url = $6, sort_order = $7
		WHERE id = $1
	`
	tag, err := conn(ctx, r.db).Exec(ctx, query,
		c.ID, c.Title, c.Issuer, c.IssueDate, c.CredentialID, c.CredentialURL, c.Order,
	)
	if err != nil {
		return apperror.NewInternal("failed to update certification", err)
	}
	if tag.RowsAffected() == 0 {
		return certification.ErrNotFound
	}
	return nil
}

func (r *postgresCertificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM certifications WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete certification", err)
	}
	if tag.RowsAffected() == 0 {
		return certification.ErrNotFound
	}
	return nil
}

func (r *postgresCertificationRepo) DeleteAll(ctx context.Context) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM certifications`); err != nil {
		return apperror.NewInternal("failed to delete certifications", err)
	}
	return nil
}

func (r *postgresCertificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications WHERE id = $1`
	return scanCertification(conn(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *postgresCertificationRepo) List(ctx context.Context) ([]*certification.Certification, error) {
	query := `SELECT ` + certificationColumns + ` FROM certifications ORDER BY sort_order ASC, created_at DESC`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to list certifications", err)
	}
	defer rows.Close()

	items := make([]*certification.Certification, 0)
	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating certification rows", err)
	}
	return items, nil
}
