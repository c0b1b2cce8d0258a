package persistence

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/contact"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresContactRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresContactRepo(db *pgxpool.Pool, log logger.Logger) contact.Repository {
	return &postgresContactRepo{db: db, logger: log}
}

var psqlContact = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var contactColumns = []string{"id", "name", "email", "subject", "message", "is_read", "source_ip", "created_at"}

func scanMessage(row pgx.Row) (*contact.Message, error) {
	m := &contact.Message{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.IsRead, &m.SourceIP, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contact.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan contact message row", err)
	}
	return m, nil
}

func (r *postgresContactRepo) Save(ctx context.Context, m *contact.Message) error {
	query, args, err := psqlContact.Insert("contact_messages").
		Columns(contactColumns...).
		Values(m.ID, m.Name, m.Email, m.Subject, m.Body, m.IsRead, m.SourceIP, m.CreatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build contact message insert", err)
	}
	if _, err := conn(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save contact message", err)
	}
	return nil
}

func (r *postgresContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	query, args, err := psqlContact.Select(contactColumns...).From("contact_messages").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build contact message query", err)
	}
	return scanMessage(conn(ctx, r.db).QueryRow(ctx, query, args...))
}

func (r *postgresContactRepo) List(ctx context.Context, filter contact.Filter) ([]*contact.Message, error) {
	builder := psqlContact.Select(contactColumns...).From("contact_messages").OrderBy("created_at DESC")
	if filter.IsRead != nil {
		builder = builder.Where(sq.Eq{"is_read": *filter.IsRead})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build contact messages query", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list contact messages", err)
	}
	defer rows.Close()

	messages := make([]*contact.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating contact message rows", err)
	}
	return messages, nil
}

func (r *postgresContactRepo) SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*contact.Message, error) {
	query, args, err := psqlContact.Update("contact_messages").
		Set("is_read", isRead).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, email, subject, message, is_read, source_ip, created_at").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build contact message update", err)
	}
	return scanMessage(conn(ctx, r.db).QueryRow(ctx, query, args...))
}

func (r *postgresContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete contact message", err)
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func (r *postgresContactRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := psqlContact.Select("COUNT(*)").From("contact_messages").Where(sq.GtOrEq{"created_at": since}).ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build contact count query", err)
	}
	var count int
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperror.NewInternal("failed to count contact messages", err)
	}
	return count, nil
}
