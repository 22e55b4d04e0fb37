package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/service"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type StatsHandler struct {
	statsService service.StatsService
	log          logger.Logger
}

func NewStatsHandler(statsService service.StatsService, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		log:          log,
	}
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to load stats", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success("", stats))
}

func (h *StatsHandler) Contacts(c *gin.Context) {
	stats, err := h.statsService.Contacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to load contact stats", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success("", stats))
}

func (h *StatsHandler) Projects(c *gin.Context) {
	stats, err := h.statsService.Projects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to load project stats", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success("", stats))
}
