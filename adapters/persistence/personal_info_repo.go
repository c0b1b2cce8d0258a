package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresPersonalInfoRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPersonalInfoRepo(db *pgxpool.Pool, log logger.Logger) personalinfo.Repository {
	return &postgresPersonalInfoRepo{db: db, logger: log}
}

const selectPersonalInfo = `
	SELECT name, title, email, phone, github, linkedin, bio, created_at, updated_at
	FROM personal_info WHERE id = $1
`

func scanPersonalInfo(row pgx.Row) (*personalinfo.PersonalInfo, error) {
	p := &personalinfo.PersonalInfo{}
	err := row.Scan(&p.Name, &p.Title, &p.Email, &p.Phone, &p.Github, &p.Linkedin, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, personalinfo.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan personal info row", err)
	}
	return p, nil
}

func (r *postgresPersonalInfoRepo) Get(ctx context.Context) (*personalinfo.PersonalInfo, error) {
	return scanPersonalInfo(conn(ctx, r.db).QueryRow(ctx, selectPersonalInfo, personalinfo.SingletonID))
}

func (r *postgresPersonalInfoRepo) GetOrCreate(ctx context.Context, d *personalinfo.PersonalInfo) (*personalinfo.PersonalInfo, error) {
	q := conn(ctx, r.db)
	query := `
		INSERT INTO personal_info (id, name, title, email, phone, github, linkedin, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, personalinfo.SingletonID, d.Name, d.Title, d.Email, d.Phone, d.Github, d.Linkedin, d.Bio); err != nil {
		return nil, apperror.NewInternal("failed to create personal info", err)
	}
	return scanPersonalInfo(q.QueryRow(ctx, selectPersonalInfo, personalinfo.SingletonID))
}

func (r *postgresPersonalInfoRepo) Upsert(ctx context.Context, p *personalinfo.PersonalInfo) error {
	query := `
		INSERT INTO personal_info (id, name, title, email, phone, github, linkedin, bio, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, title = EXCLUDED.title, email = EXCLUDED.email,
			phone = EXCLUDED.phone, github = EXCLUDED.github, linkedin = EXCLUDED.linkedin,
			bio = EXCLUDED.bio, updated_at = NOW()
	`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		personalinfo.SingletonID, p.Name, p.Title, p.Email, p.Phone, p.Github, p.Linkedin, p.Bio,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert personal info", err)
	}
	return nil
}
