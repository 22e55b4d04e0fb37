package service

import (
	"context"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/repository"
	"portfolio_server/pkg/logger"
)

type SkillService interface {
	List(ctx context.Context, category string) ([]*domain.Skill, error)
	// ListGrouped buckets skills by category, preserving display order
	// inside each bucket.
	ListGrouped(ctx context.Context) (map[string][]*domain.Skill, error)
}

type skillService struct {
	skillRepo repository.SkillRepository
	log       logger.Logger
}

func NewSkillService(skillRepo repository.SkillRepository, log logger.Logger) SkillService {
	return &skillService{skillRepo: skillRepo, log: log}
}

func (s *skillService) List(ctx context.Context, category string) ([]*domain.Skill, error) {
	return s.skillRepo.List(ctx, category)
}

func (s *skillService) ListGrouped(ctx context.Context) (map[string][]*domain.Skill, error) {
	skills, err := s.skillRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*domain.Skill)
	for _, skill := range skills {
		grouped[skill.Category] = append(grouped[skill.Category], skill)
	}
	return grouped, nil
}
