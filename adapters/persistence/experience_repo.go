package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresExperienceRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresExperienceRepo(db *pgxpool.Pool, log logger.Logger) experience.Repository {
	return &postgresExperienceRepo{db: db, logger: log}
}

const experienceColumns = `id, title, company, duration, description, sort_order, created_at, updated_at`

func scanExperience(row pgx.Row) (*experience.Experience, error) {
	e := &experience.Experience{}
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Duration, &e.Description, &e.Order, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, experience.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan experience row", err)
	}
	return e, nil
}

func (r *postgresExperienceRepo) Save(ctx context.Context, e *experience.Experience) error {
	query := `
		INSERT INTO experiences (id, title, company, duration, description, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		e.ID, e.Title, e.Company, e.Duration, e.Description, e.Order, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save experience", err)
	}
	return nil
}

func (r *postgresExperienceRepo) Update(ctx context.Context, e *experience.Experience) error {
	query := `
		UPDATE experiences SET
			title = $2, company = $3, duration = $4, description = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := conn(ctx, r.db).Exec(ctx, query, e.ID, e.Title, e.Company, e.Duration, e.Description, e.Order)
	if err != nil {
		return apperror.NewInternal("failed to update experience", err)
	}
	if tag.RowsAffected() == 0 {
		return experience.ErrNotFound
	}
	return nil
}

func (r *postgresExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete experience", err)
	}
	if tag.RowsAffected() == 0 {
		return experience.ErrNotFound
	}
	return nil
}

func (r *postgresExperienceRepo) DeleteAll(ctx context.Context) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM experiences`); err != nil {
		return apperror.NewInternal("failed to delete experiences", err)
	}
	return nil
}

func (r *postgresExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*experience.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`
	return scanExperience(conn(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *postgresExperienceRepo) List(ctx context.Context) ([]*experience.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences ORDER BY sort_order ASC, created_at DESC`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to list experiences", err)
	}
	defer rows.Close()

	items := make([]*experience.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating experience rows", err)
	}
	return items, nil
}
