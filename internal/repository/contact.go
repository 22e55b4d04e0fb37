package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio_server/internal/domain"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

type ContactRepository interface {
	Create(ctx context.Context, submission *domain.ContactSubmission) error
	List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*domain.ContactSubmission, error)
	CountAll(ctx context.Context, unreadOnly bool) (int64, error)
	UpdateFlags(ctx context.Context, id int64, isRead, isReplied *bool) (*domain.ContactSubmission, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.ContactStats, error)
}

type contactRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewContactRepository(db *pgxpool.Pool, log logger.Logger) ContactRepository {
	return &contactRepository{db: db, log: log}
}

func (r *contactRepository) Create(ctx context.Context, submission *domain.ContactSubmission) error {
	query := `
		INSERT INTO contact_submissions (first_name, last_name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, is_replied, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		submission.FirstName, submission.LastName, submission.Email,
		submission.Subject, submission.Message,
	).Scan(&submission.ID, &submission.IsRead, &submission.IsReplied,
		&submission.CreatedAt, &submission.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create contact submission", "error", err)
		return fmt.Errorf("failed to create contact submission: %w", err)
	}

	return nil
}

func (r *contactRepository) List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*domain.ContactSubmission, error) {
	query := `
		SELECT id, first_name, last_name, email, subject, message, is_read, is_replied, created_at, updated_at
		FROM contact_submissions
	`
	if unreadOnly {
		query += " WHERE is_read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list contact submissions", "error", err)
		return nil, err
	}
	defer rows.Close()

	var submissions []*domain.ContactSubmission
	for rows.Next() {
		s := &domain.ContactSubmission{}
		err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Subject,
			&s.Message, &s.IsRead, &s.IsReplied, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			r.log.Error("Failed to scan contact submission", "error", err)
			return nil, err
		}
		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}

func (r *contactRepository) CountAll(ctx context.Context, unreadOnly bool) (int64, error) {
	query := "SELECT COUNT(*) FROM contact_submissions"
	if unreadOnly {
		query += " WHERE is_read = FALSE"
	}

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to count contact submissions", "error", err)
		return 0, err
	}
	return total, nil
}

func (r *contactRepository) UpdateFlags(ctx context.Context, id int64, isRead, isReplied *bool) (*domain.ContactSubmission, error) {
	updates := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if isRead != nil {
		args = append(args, *isRead)
		updates = append(updates, fmt.Sprintf("is_read = $%d", len(args)))
	}
	if isReplied != nil {
		args = append(args, *isReplied)
		updates = append(updates, fmt.Sprintf("is_replied = $%d", len(args)))
	}
	if len(updates) == 0 {
		return nil, apperrors.ErrBadRequest
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE contact_submissions
		SET %s, updated_at = CURRENT_TIMESTAMP
		WHERE id = $%d
		RETURNING id, first_name, last_name, email, subject, message, is_read, is_replied, created_at, updated_at
	`, strings.Join(updates, ", "), len(args))

	s := &domain.ContactSubmission{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Subject,
		&s.Message, &s.IsRead, &s.IsReplied, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		r.log.Error("Failed to update contact submission", "error", err, "id", id)
		return nil, err
	}

	return s, nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM contact_submissions WHERE id = $1", id)
	if err != nil {
		r.log.Error("Failed to delete contact submission", "error", err, "id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *contactRepository) Stats(ctx context.Context) (*domain.ContactStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_read = FALSE),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM contact_submissions
	`

	stats := &domain.ContactStats{}
	if err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Unread, &stats.Recent); err != nil {
		r.log.Error("Failed to get contact stats", "error", err)
		return nil, err
	}
	return stats, nil
}
