package service

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/repository"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*domain.ContactSubmission, error)
	List(ctx context.Context, page, limit int, unreadOnly bool) ([]*domain.ContactSubmission, *domain.Pagination, error)
	UpdateFlags(ctx context.Context, id int64, isRead, isReplied *bool) (*domain.ContactSubmission, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.ContactStats, error)
}

type ContactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

var nameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Validate normalizes the input in place and returns per-field errors.
func (in *ContactInput) Validate() map[string]string {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	errs := make(map[string]string)

	checkName := func(field, value string) {
		switch {
		case value == "":
			errs[field] = "is required"
		case utf8.RuneCountInString(value) > 50:
			errs[field] = "must be at most 50 characters"
		case !nameRe.MatchString(value):
			errs[field] = "may only contain letters and spaces"
		}
	}
	checkName("first_name", in.FirstName)
	checkName("last_name", in.LastName)

	switch {
	case in.Email == "":
		errs["email"] = "is required"
	case utf8.RuneCountInString(in.Email) > 100:
		errs["email"] = "must be at most 100 characters"
	default:
		if _, err := mail.ParseAddress(in.Email); err != nil {
			errs["email"] = "must be a valid email address"
		}
	}

	switch {
	case in.Subject == "":
		errs["subject"] = "is required"
	case utf8.RuneCountInString(in.Subject) > 100:
		errs["subject"] = "must be at most 100 characters"
	}

	switch {
	case in.Message == "":
		errs["message"] = "is required"
	case utf8.RuneCountInString(in.Message) > 1000:
		errs["message"] = "must be at most 1000 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type contactService struct {
	contactRepo repository.ContactRepository
	email       EmailService
	log         logger.Logger
}

func NewContactService(contactRepo repository.ContactRepository, email EmailService, log logger.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		email:       email,
		log:         log,
	}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactSubmission, error) {
	if errs := input.Validate(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	submission := &domain.ContactSubmission{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.contactRepo.Create(ctx, submission); err != nil {
		s.log.Error("Failed to store contact submission", "error", err)
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	// Emails go out in the background; delivery failures must not fail
	// the request once the submission is persisted.
	go func(sub domain.ContactSubmission) {
		if err := s.email.SendContactNotification(&sub); err != nil {
			s.log.Warn("Admin notification not delivered", "submission_id", sub.ID, "error", err)
		}
		if err := s.email.SendAutoReply(&sub); err != nil {
			s.log.Warn("Auto-reply not delivered", "submission_id", sub.ID, "error", err)
		}
	}(*submission)

	return submission, nil
}

func (s *contactService) List(ctx context.Context, page, limit int, unreadOnly bool) ([]*domain.ContactSubmission, *domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit
	submissions, err := s.contactRepo.List(ctx, limit, offset, unreadOnly)
	if err != nil {
		return nil, nil, err
	}

	total, err := s.contactRepo.CountAll(ctx, unreadOnly)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := &domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	return submissions, pagination, nil
}

func (s *contactService) UpdateFlags(ctx context.Context, id int64, isRead, isReplied *bool) (*domain.ContactSubmission, error) {
	if isRead == nil && isReplied == nil {
		return nil, apperrors.ErrBadRequest
	}
	return s.contactRepo.UpdateFlags(ctx, id, isRead, isReplied)
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	return s.contactRepo.Delete(ctx, id)
}

func (s *contactService) Stats(ctx context.Context) (*domain.ContactStats, error) {
	return s.contactRepo.Stats(ctx)
}

// ValidationError carries per-field messages for the API envelope.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
