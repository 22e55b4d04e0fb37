package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/service"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type SkillHandler struct {
	skillService service.SkillService
	log          logger.Logger
}

func NewSkillHandler(skillService service.SkillService, log logger.Logger) *SkillHandler {
	return &SkillHandler{
		skillService: skillService,
		log:          log,
	}
}

// List returns skills either flat (?category=...) or grouped by category.
func (h *SkillHandler) List(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		skills, err := h.skillService.List(c.Request.Context(), category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to list skills", nil))
			return
		}
		c.JSON(http.StatusOK, response.Success("", skills))
		return
	}

	grouped, err := h.skillService.ListGrouped(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to list skills", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("", grouped))
}
