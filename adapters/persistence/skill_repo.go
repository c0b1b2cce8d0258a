package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, log logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: log}
}

var psqlSkill = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var skillColumns = []string{"id", "name", "category", "proficiency", "created_at"}

func scanSkill(row pgx.Row) (*skill.Skill, error) {
	s := &skill.Skill{}
	var category string
	if err := row.Scan(&s.ID, &s.Name, &category, &s.Proficiency, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, skill.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan skill row", err)
	}
	s.Category = skill.Category(category)
	return s, nil
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *skill.Skill) error {
	query := `
		INSERT INTO skills (id, name, category, proficiency, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := conn(ctx, r.db).Exec(ctx, query, s.ID, s.Name, string(s.Category), s.Proficiency, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return skill.ErrDuplicate
		}
		return apperror.NewInternal("failed to save skill", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.Skill) error {
	query := `UPDATE skills SET name = $2, category = $3, proficiency = $4 WHERE id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query, s.ID, s.Name, string(s.Category), s.Proficiency)
	if err != nil {
		if isUniqueViolation(err) {
			return skill.ErrDuplicate
		}
		return apperror.NewInternal("failed to update skill", err)
	}
	if tag.RowsAffected() == 0 {
		return skill.ErrNotFound
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if tag.RowsAffected() == 0 {
		return skill.ErrNotFound
	}
	return nil
}

func (r *postgresSkillRepo) DeleteAll(ctx context.Context) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM skills`); err != nil {
		return apperror.NewInternal("failed to delete skills", err)
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	query, args, err := psqlSkill.Select(skillColumns...).From("skills").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill query", err)
	}
	return scanSkill(conn(ctx, r.db).QueryRow(ctx, query, args...))
}

func (r *postgresSkillRepo) List(ctx context.Context, filter skill.Filter) ([]*skill.Skill, error) {
	builder := psqlSkill.Select(skillColumns...).From("skills").OrderBy("category", "seq")
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": string(filter.Category)})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skills query", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list skills", err)
	}
	defer rows.Close()

	skills := make([]*skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return skills, nil
}
