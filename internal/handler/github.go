package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/service"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type GitHubHandler struct {
	githubService service.GitHubService
	log           logger.Logger
}

func NewGitHubHandler(githubService service.GitHubService, log logger.Logger) *GitHubHandler {
	return &GitHubHandler{
		githubService: githubService,
		log:           log,
	}
}

func (h *GitHubHandler) Contributions(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2008 || parsed > time.Now().Year() {
			c.JSON(http.StatusBadRequest, response.Error("Invalid year", nil))
			return
		}
		year = parsed
	}

	report, err := h.githubService.Contributions(c.Request.Context(), year)
	if err != nil {
		h.log.Error("Failed to fetch contributions", "error", err)
		c.JSON(http.StatusBadGateway, response.Error("Failed to fetch contribution data", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("", report))
}
