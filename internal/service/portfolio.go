package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/repository"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

type PortfolioService interface {
	// Get never fails on an empty table: it falls back to default
	// profile data so a fresh deployment renders.
	Get(ctx context.Context) (*domain.PortfolioData, error)
	Update(ctx context.Context, data *domain.PortfolioData) (*domain.PortfolioData, error)
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	log           logger.Logger
}

func NewPortfolioService(portfolioRepo repository.PortfolioRepository, log logger.Logger) PortfolioService {
	return &portfolioService{portfolioRepo: portfolioRepo, log: log}
}

func (s *portfolioService) Get(ctx context.Context) (*domain.PortfolioData, error) {
	data, err := s.portfolioRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			return domain.DefaultPortfolio(), nil
		}
		return nil, err
	}
	return data, nil
}

func (s *portfolioService) Update(ctx context.Context, data *domain.PortfolioData) (*domain.PortfolioData, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Title = strings.TrimSpace(data.Title)
	data.Description = strings.TrimSpace(data.Description)
	data.Location = strings.TrimSpace(data.Location)

	errs := make(map[string]string)
	if data.Name == "" {
		errs["name"] = "is required"
	}
	if data.Title == "" {
		errs["title"] = "is required"
	}
	if utf8.RuneCountInString(data.Description) > 2000 {
		errs["description"] = "must be at most 2000 characters"
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.portfolioRepo.UpdateLatest(ctx, data); err != nil {
		s.log.Error("Failed to update portfolio data", "error", err)
		return nil, err
	}
	return s.portfolioRepo.GetLatest(ctx)
}
