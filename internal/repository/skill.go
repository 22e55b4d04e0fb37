package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio_server/internal/domain"
	"portfolio_server/pkg/logger"
)

type SkillRepository interface {
	// List returns skills ordered for display; category narrows the
	// result when non-empty.
	List(ctx context.Context, category string) ([]*domain.Skill, error)
}

type skillRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewSkillRepository(db *pgxpool.Pool, log logger.Logger) SkillRepository {
	return &skillRepository{db: db, log: log}
}

func (r *skillRepository) List(ctx context.Context, category string) ([]*domain.Skill, error) {
	query := `
		SELECT id, name, category, proficiency_level, display_order, created_at
		FROM skills
	`
	var args []any
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY display_order ASC, name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list skills", "error", err)
		return nil, err
	}
	defer rows.Close()

	var skills []*domain.Skill
	for rows.Next() {
		s := &domain.Skill{}
		err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.ProficiencyLevel, &s.DisplayOrder, &s.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan skill", "error", err)
			return nil, err
		}
		skills = append(skills, s)
	}

	return skills, rows.Err()
}
