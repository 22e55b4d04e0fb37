package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"portfolio_server/pkg/logger"
)

type Repositories struct {
	Contact     ContactRepository
	Portfolio   PortfolioRepository
	Project     ProjectRepository
	Skill       SkillRepository
	User        UserRepository
	RateLimit   RateLimitRepository
	GitHubCache GitHubCacheRepository
}

func NewRepositories(db *pgxpool.Pool, rdb *redis.Client, log logger.Logger) *Repositories {
	return &Repositories{
		Contact:     NewContactRepository(db, log),
		Portfolio:   NewPortfolioRepository(db, log),
		Project:     NewProjectRepository(db, log),
		Skill:       NewSkillRepository(db, log),
		User:        NewUserRepository(db, log),
		RateLimit:   NewRateLimitRepository(rdb, log),
		GitHubCache: NewGitHubCacheRepository(rdb, log),
	}
}
