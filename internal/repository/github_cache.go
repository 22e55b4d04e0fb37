package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_server/internal/domain"
	"portfolio_server/pkg/logger"
)

// GitHubCacheRepository keeps contribution reports in Redis so the
// public calendar endpoint doesn't hammer the GitHub API.
type GitHubCacheRepository interface {
	Get(ctx context.Context, username string, year int) (*domain.ContributionReport, error)
	Set(ctx context.Context, username string, year int, report *domain.ContributionReport, ttl time.Duration) error
}

type githubCacheRepository struct {
	redis *redis.Client
	log   logger.Logger
}

func NewGitHubCacheRepository(rdb *redis.Client, log logger.Logger) GitHubCacheRepository {
	return &githubCacheRepository{redis: rdb, log: log}
}

func cacheKey(username string, year int) string {
	return fmt.Sprintf("github:contributions:%s:%d", username, year)
}

func (r *githubCacheRepository) Get(ctx context.Context, username string, year int) (*domain.ContributionReport, error) {
	raw, err := r.redis.Get(ctx, cacheKey(username, year)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read github cache", "error", err)
		return nil, err
	}

	report := &domain.ContributionReport{}
	if err := json.Unmarshal(raw, report); err != nil {
		r.log.Warn("Corrupt github cache entry, ignoring", "error", err)
		return nil, nil
	}
	return report, nil
}

func (r *githubCacheRepository) Set(ctx context.Context, username string, year int, report *domain.ContributionReport, ttl time.Duration) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}

	if err := r.redis.Set(ctx, cacheKey(username, year), raw, ttl).Err(); err != nil {
		r.log.Error("Failed to write github cache", "error", err)
		return err
	}
	return nil
}
