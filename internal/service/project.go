package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/repository"
	"portfolio_server/pkg/logger"
)

type ProjectService interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.ProjectStats, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	log         logger.Logger
}

func NewProjectService(projectRepo repository.ProjectRepository, log logger.Logger) ProjectService {
	return &projectService{projectRepo: projectRepo, log: log}
}

func validateProject(p *domain.Project) map[string]string {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)

	errs := make(map[string]string)
	switch {
	case p.Title == "":
		errs["title"] = "is required"
	case utf8.RuneCountInString(p.Title) > 200:
		errs["title"] = "must be at most 200 characters"
	}
	if p.Description == "" {
		errs["description"] = "is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *projectService) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if errs := validateProject(project); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	project.CreatedAt = time.Now()

	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.log.Error("Failed to create project", "error", err)
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	return s.projectRepo.List(ctx, filter)
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if errs := validateProject(project); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, project.ID)
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.projectRepo.Delete(ctx, id)
}

func (s *projectService) Stats(ctx context.Context) (*domain.ProjectStats, error) {
	return s.projectRepo.Stats(ctx)
}
