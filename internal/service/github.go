package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"portfolio_server/internal/config"
	"portfolio_server/internal/domain"
	"portfolio_server/internal/repository"
	"portfolio_server/pkg/logger"
)

const (
	githubGraphQLURL = "https://api.github.com/graphql"
	githubEventsURL  = "https://api.github.com/users/%s/events?per_page=100&page=%d"
)

type GitHubService interface {
	// Contributions returns the contribution calendar for the given
	// year (0 means the trailing twelve months), served from cache
	// when a fresh report is available.
	Contributions(ctx context.Context, year int) (*domain.ContributionReport, error)
}

type githubService struct {
	cfg    config.GitHubConfig
	cache  repository.GitHubCacheRepository
	client *http.Client
	log    logger.Logger
}

func NewGitHubService(cfg config.GitHubConfig, cache repository.GitHubCacheRepository, log logger.Logger) GitHubService {
	return &githubService{
		cfg:   cfg,
		cache: cache,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

func (s *githubService) Contributions(ctx context.Context, year int) (*domain.ContributionReport, error) {
	if cached, err := s.cache.Get(ctx, s.cfg.Username, year); err == nil && cached != nil {
		return cached, nil
	}

	var (
		report *domain.ContributionReport
		err    error
	)
	if s.cfg.Token != "" {
		report, err = s.fetchGraphQL(ctx, year)
	} else {
		// Without a token only the public events feed is reachable,
		// which covers roughly the last 90 days.
		report, err = s.fetchFromEvents(ctx)
	}
	if err != nil {
		return nil, err
	}

	report.CurrentStreak, report.LongestStreak = computeStreaks(report.Contributions)

	if cacheErr := s.cache.Set(ctx, s.cfg.Username, year, report, s.cfg.CacheTTL); cacheErr != nil {
		s.log.Warn("Failed to cache contribution report", "error", cacheErr)
	}
	return report, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const contributionsQuery = `query($username: String!, $from: DateTime, $to: DateTime) {
  user(login: $username) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

func (s *githubService) fetchGraphQL(ctx context.Context, year int) (*domain.ContributionReport, error) {
	variables := map[string]any{"username": s.cfg.Username}
	if year > 0 {
		variables["from"] = fmt.Sprintf("%d-01-01T00:00:00Z", year)
		variables["to"] = fmt.Sprintf("%d-12-31T23:59:59Z", year)
	}

	body, err := json.Marshal(graphQLRequest{Query: contributionsQuery, Variables: variables})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, githubGraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("GitHub GraphQL request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github graphql: unexpected status %d", resp.StatusCode)
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("github graphql: %s", out.Errors[0].Message)
	}

	calendar := out.Data.User.ContributionsCollection.ContributionCalendar
	report := &domain.ContributionReport{
		TotalContributions: calendar.TotalContributions,
		Contributions:      make([]domain.ContributionDay, 0, 366),
	}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			report.Contributions = append(report.Contributions, domain.ContributionDay{
				Date:  day.Date,
				Count: day.ContributionCount,
				Level: domain.ContributionLevel(day.ContributionCount),
			})
		}
	}
	return report, nil
}

type githubEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// fetchFromEvents approximates the calendar from the public events feed.
// It only sees recent history, so earlier days come back as zeroes.
func (s *githubService) fetchFromEvents(ctx context.Context) (*domain.ContributionReport, error) {
	counts := make(map[string]int)

	for page := 1; page <= 3; page++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(githubEventsURL, s.cfg.Username, page), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := s.client.Do(req)
		if err != nil {
			s.log.Error("GitHub events request failed", "error", err)
			return nil, err
		}

		var events []githubEvent
		err = json.NewDecoder(resp.Body).Decode(&events)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			break
		}

		for _, ev := range events {
			if ev.Type == "PushEvent" || ev.Type == "PullRequestEvent" || ev.Type == "IssuesEvent" {
				counts[ev.CreatedAt.UTC().Format("2006-01-02")]++
			}
		}
	}

	// Fill a full trailing year so the calendar grid stays complete.
	report := &domain.ContributionReport{
		Contributions: make([]domain.ContributionDay, 0, 366),
	}
	day := time.Now().UTC().AddDate(-1, 0, 0)
	end := time.Now().UTC()
	for !day.After(end) {
		date := day.Format("2006-01-02")
		count := counts[date]
		report.TotalContributions += count
		report.Contributions = append(report.Contributions, domain.ContributionDay{
			Date:  date,
			Count: count,
			Level: domain.ContributionLevel(count),
		})
		day = day.AddDate(0, 0, 1)
	}
	return report, nil
}

// computeStreaks expects contributions in ascending date order, the way
// both fetch paths produce them.
func computeStreaks(days []domain.ContributionDay) (current, longest int) {
	run := 0
	for _, day := range days {
		if day.Count > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	// The current streak runs backward from the most recent day; a
	// zero today doesn't break it until tomorrow.
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Count == 0 {
			if i == len(days)-1 {
				continue
			}
			break
		}
		current++
	}
	return current, longest
}
