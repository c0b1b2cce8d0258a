package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, log logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: log}
}

var psqlProject = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var projectColumns = []string{
	"id", "title", "description", "tech_stack", "github_url", "live_url",
	"image_url", "sort_order", "is_featured", "created_at", "updated_at",
}

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.TechStack,
		&p.GithubURL,
		&p.LiveURL,
		&p.ImageURL,
		&p.Order,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return p, nil
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.Project) error {
	stack := p.TechStack
	if stack == nil {
		stack = []string{}
	}
	query, args, err := psqlProject.Insert("projects").
		Columns(projectColumns...).
		Values(p.ID, p.Title, p.Description, stack, p.GithubURL, p.LiveURL,
			p.ImageURL, p.Order, p.IsFeatured, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build project insert", err)
	}
	if _, err := conn(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	stack := p.TechStack
	if stack == nil {
		stack = []string{}
	}
	query, args, err := psqlProject.Update("projects").
		SetMap(map[string]any{
			"title":       p.Title,
			"description": p.Description,
			"tech_stack":  stack,
			"github_url":  p.GithubURL,
			"live_url":    p.LiveURL,
			"image_url":   p.ImageURL,
			"sort_order":  p.Order,
			"is_featured": p.IsFeatured,
			"updated_at":  sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build project update", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotFound
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotFound
	}
	return nil
}

func (r *postgresProjectRepo) DeleteAll(ctx context.Context) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM projects`); err != nil {
		return apperror.NewInternal("failed to delete projects", err)
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query, args, err := psqlProject.Select(projectColumns...).From("projects").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build project query", err)
	}
	return scanProject(conn(ctx, r.db).QueryRow(ctx, query, args...))
}

func (r *postgresProjectRepo) List(ctx context.Context, filter project.Filter) ([]*project.Project, error) {
	builder := psqlProject.Select(projectColumns...).From("projects").OrderBy("sort_order ASC", "created_at DESC")
	if filter.Featured != nil {
		builder = builder.Where(sq.Eq{"is_featured": *filter.Featured})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build projects query", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list projects", err)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}
