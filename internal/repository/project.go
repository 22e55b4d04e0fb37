package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio_server/internal/domain"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.ProjectStats, error)
}

type projectRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewProjectRepository(db *pgxpool.Pool, log logger.Logger) ProjectRepository {
	return &projectRepository{db: db, log: log}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (title, description, image_url, technologies, github_url, live_url, featured, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		project.Title, project.Description, project.ImageURL, project.Technologies,
		project.GitHubURL, project.LiveURL, project.Featured, project.DisplayOrder,
	).Scan(&project.ID, &project.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create project", "error", err)
		return err
	}

	return nil
}

func (r *projectRepository) List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	query := `
		SELECT id, title, description, image_url, technologies, github_url, live_url, featured, display_order, created_at
		FROM projects
	`
	if filter.FeaturedOnly {
		query += " WHERE featured = TRUE"
	}
	query += " ORDER BY display_order ASC, created_at DESC"

	var args []any
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $1"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list projects", "error", err)
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p := &domain.Project{}
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Technologies,
			&p.GitHubURL, &p.LiveURL, &p.Featured, &p.DisplayOrder, &p.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan project", "error", err)
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
		SELECT id, title, description, image_url, technologies, github_url, live_url, featured, display_order, created_at
		FROM projects
		WHERE id = $1
	`

	p := &domain.Project{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Technologies,
		&p.GitHubURL, &p.LiveURL, &p.Featured, &p.DisplayOrder, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		r.log.Error("Failed to get project", "error", err, "id", id)
		return nil, err
	}

	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `
		UPDATE projects
		SET title = $2, description = $3, image_url = $4, technologies = $5,
		    github_url = $6, live_url = $7, featured = $8, display_order = $9
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		project.ID, project.Title, project.Description, project.ImageURL, project.Technologies,
		project.GitHubURL, project.LiveURL, project.Featured, project.DisplayOrder,
	)
	if err != nil {
		r.log.Error("Failed to update project", "error", err, "id", project.ID)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		r.log.Error("Failed to delete project", "error", err, "id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) Stats(ctx context.Context) (*domain.ProjectStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE featured = TRUE)
		FROM projects
	`

	stats := &domain.ProjectStats{}
	if err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Featured); err != nil {
		r.log.Error("Failed to get project stats", "error", err)
		return nil, err
	}
	return stats, nil
}
