package service

import (
	"portfolio_server/internal/config"
	"portfolio_server/internal/repository"
	"portfolio_server/pkg/logger"
)

type Services struct {
	Auth      AuthService
	Contact   ContactService
	Portfolio PortfolioService
	Project   ProjectService
	Skill     SkillService
	Stats     StatsService
	GitHub    GitHubService
	Upload    UploadService
	Email     EmailService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	email := NewEmailService(cfg.SMTP, log)

	return &Services{
		Auth:      NewAuthService(repos.User, cfg.JWT, log),
		Contact:   NewContactService(repos.Contact, email, log),
		Portfolio: NewPortfolioService(repos.Portfolio, log),
		Project:   NewProjectService(repos.Project, log),
		Skill:     NewSkillService(repos.Skill, log),
		Stats:     NewStatsService(repos.Contact, repos.Project, log),
		GitHub:    NewGitHubService(cfg.GitHub, repos.GitHubCache, log),
		Upload:    NewUploadService(cfg.Upload, log),
		Email:     email,
		RateLimit: NewRateLimitService(repos.RateLimit, log),
	}
}
