package service

import (
	"context"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/repository"
	"portfolio_server/pkg/logger"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Contacts(ctx context.Context) (*domain.ContactStats, error)
	Projects(ctx context.Context) (*domain.ProjectStats, error)
}

// DashboardStats aggregates the counters shown on the admin landing page.
type DashboardStats struct {
	Contacts *domain.ContactStats `json:"contacts"`
	Projects *domain.ProjectStats `json:"projects"`
}

type statsService struct {
	contactRepo repository.ContactRepository
	projectRepo repository.ProjectRepository
	log         logger.Logger
}

func NewStatsService(contactRepo repository.ContactRepository, projectRepo repository.ProjectRepository, log logger.Logger) StatsService {
	return &statsService{
		contactRepo: contactRepo,
		projectRepo: projectRepo,
		log:         log,
	}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	contacts, err := s.contactRepo.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load contact stats", "error", err)
		return nil, err
	}

	projects, err := s.projectRepo.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load project stats", "error", err)
		return nil, err
	}

	return &DashboardStats{
		Contacts: contacts,
		Projects: projects,
	}, nil
}

func (s *statsService) Contacts(ctx context.Context) (*domain.ContactStats, error) {
	return s.contactRepo.Stats(ctx)
}

func (s *statsService) Projects(ctx context.Context) (*domain.ProjectStats, error) {
	return s.projectRepo.Stats(ctx)
}
