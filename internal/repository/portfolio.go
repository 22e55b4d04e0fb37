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

type PortfolioRepository interface {
	// GetLatest returns the most recently updated profile row, or
	// apperrors.ErrPortfolioNotFound when the table is empty.
	GetLatest(ctx context.Context) (*domain.PortfolioData, error)
	UpdateLatest(ctx context.Context, data *domain.PortfolioData) error
}

type portfolioRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewPortfolioRepository(db *pgxpool.Pool, log logger.Logger) PortfolioRepository {
	return &portfolioRepository{db: db, log: log}
}

func (r *portfolioRepository) GetLatest(ctx context.Context) (*domain.PortfolioData, error) {
	query := `
		SELECT id, name, title, description, location,
		       social_instagram, social_facebook, social_twitter, social_youtube,
		       updated_at
		FROM portfolio_data
		ORDER BY updated_at DESC
		LIMIT 1
	`

	data := &domain.PortfolioData{}
	var instagram, facebook, twitter, youtube *string

	err := r.db.QueryRow(ctx, query).Scan(
		&data.ID, &data.Name, &data.Title, &data.Description, &data.Location,
		&instagram, &facebook, &twitter, &youtube, &data.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		r.log.Error("Failed to get portfolio data", "error", err)
		return nil, err
	}

	data.SocialLinks = domain.SocialLinks{
		Instagram: orPlaceholder(instagram),
		Facebook:  orPlaceholder(facebook),
		Twitter:   orPlaceholder(twitter),
		YouTube:   orPlaceholder(youtube),
	}
	return data, nil
}

func (r *portfolioRepository) UpdateLatest(ctx context.Context, data *domain.PortfolioData) error {
	query := `
		UPDATE portfolio_data
		SET name = $1, title = $2, description = $3, location = $4,
		    social_instagram = $5, social_facebook = $6, social_twitter = $7, social_youtube = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = (SELECT id FROM portfolio_data ORDER BY updated_at DESC LIMIT 1)
		RETURNING id, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		data.Name, data.Title, data.Description, data.Location,
		nullable(data.SocialLinks.Instagram), nullable(data.SocialLinks.Facebook),
		nullable(data.SocialLinks.Twitter), nullable(data.SocialLinks.YouTube),
	).Scan(&data.ID, &data.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrPortfolioNotFound
		}
		r.log.Error("Failed to update portfolio data", "error", err)
		return err
	}

	return nil
}

func orPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return "#"
	}
	return *s
}

func nullable(s string) *string {
	if s == "" || s == "#" {
		return nil
	}
	return &s
}
