package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

const selectUser = `SELECT id, username, email, password_hash, is_admin, created_at FROM users`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, apperror.NewInternal("error when query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return scanUser(conn(ctx, r.db).QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *postgresUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return scanUser(conn(ctx, r.db).QueryRow(ctx, selectUser+` WHERE username = $1`, username))
}

func (r *postgresUserRepo) Upsert(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username) DO UPDATE SET
			email = EXCLUDED.email, password_hash = EXCLUDED.password_hash, is_admin = EXCLUDED.is_admin
		RETURNING id, created_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to upsert user", err)
	}
	return nil
}
