package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/service"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type PortfolioHandler struct {
	portfolioService service.PortfolioService
	log              logger.Logger
}

func NewPortfolioHandler(portfolioService service.PortfolioService, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		log:              log,
	}
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	data, err := h.portfolioService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to load portfolio data", nil))
		return
	}
	c.JSON(http.StatusOK, response.Success("", data))
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	var data domain.PortfolioData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request body", nil))
		return
	}

	updated, err := h.portfolioService.Update(c.Request.Context(), &data)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, response.Error("Validation failed", verr.Fields))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update portfolio data", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("Portfolio updated", updated))
}
