package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresSettingsRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSettingsRepo(db *pgxpool.Pool, log logger.Logger) settings.Repository {
	return &postgresSettingsRepo{db: db, logger: log}
}

const selectSettings = `
	SELECT theme, maintenance_mode, last_backup, created_at, updated_at
	FROM portfolio_settings WHERE id = $1
`

func scanSettings(row pgx.Row) (*settings.Settings, error) {
	s := &settings.Settings{}
	var theme string
	if err := row.Scan(&theme, &s.MaintenanceMode, &s.LastBackup, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan settings row", err)
	}
	s.Theme = settings.Theme(theme)
	return s, nil
}

func (r *postgresSettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	return scanSettings(conn(ctx, r.db).QueryRow(ctx, selectSettings, settings.SingletonID))
}

// Create relies on the fixed primary key so a second row is rejected by the database itself.
func (r *postgresSettingsRepo) Create(ctx context.Context, s *settings.Settings) error {
	query := `
		INSERT INTO portfolio_settings (id, theme, maintenance_mode, last_backup)
		VALUES ($1, $2, $3, $4)
	`
	_, err := conn(ctx, r.db).Exec(ctx, query, settings.SingletonID, string(s.Theme), s.MaintenanceMode, s.LastBackup)
	if err != nil {
		if isUniqueViolation(err) {
			return settings.ErrAlreadyExists
		}
		return apperror.NewInternal("failed to create settings", err)
	}
	return nil
}

func (r *postgresSettingsRepo) GetOrCreate(ctx context.Context, d *settings.Settings) (*settings.Settings, error) {
	q := conn(ctx, r.db)
	query := `
		INSERT INTO portfolio_settings (id, theme, maintenance_mode)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, settings.SingletonID, string(d.Theme), d.MaintenanceMode); err != nil {
		return nil, apperror.NewInternal("failed to create settings", err)
	}
	return scanSettings(q.QueryRow(ctx, selectSettings, settings.SingletonID))
}

func (r *postgresSettingsRepo) Update(ctx context.Context, s *settings.Settings) error {
	query := `
		UPDATE portfolio_settings
		SET theme = $2, maintenance_mode = $3, last_backup = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := conn(ctx, r.db).Exec(ctx, query, settings.SingletonID, string(s.Theme), s.MaintenanceMode, s.LastBackup)
	if err != nil {
		return apperror.NewInternal("failed to update settings", err)
	}
	if tag.RowsAffected() == 0 {
		return settings.ErrNotFound
	}
	return nil
}
