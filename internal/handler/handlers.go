package handler

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio_server/internal/chat"
	"portfolio_server/internal/config"
	"portfolio_server/internal/service"
	"portfolio_server/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Contact   *ContactHandler
	Portfolio *PortfolioHandler
	Project   *ProjectHandler
	Skill     *SkillHandler
	Stats     *StatsHandler
	GitHub    *GitHubHandler
	Upload    *UploadHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, hub *chat.Hub, db *pgxpool.Pool, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(db, cfg),
		Auth:      NewAuthHandler(services.Auth, log),
		Contact:   NewContactHandler(services.Contact, log),
		Portfolio: NewPortfolioHandler(services.Portfolio, log),
		Project:   NewProjectHandler(services.Project, log),
		Skill:     NewSkillHandler(services.Skill, log),
		Stats:     NewStatsHandler(services.Stats, log),
		GitHub:    NewGitHubHandler(services.GitHub, log),
		Upload:    NewUploadHandler(services.Upload, log),
		WebSocket: NewWebSocketHandler(hub, cfg.Chat, log),
	}
}
