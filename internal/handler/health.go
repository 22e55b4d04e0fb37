package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio_server/internal/config"
)

type HealthHandler struct {
	db          *pgxpool.Pool
	environment string
}

func NewHealthHandler(db *pgxpool.Pool, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		db:          db,
		environment: cfg.Environment,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if err := h.db.Ping(c.Request.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":      status,
		"service":     "portfolio-server",
		"environment": h.environment,
	})
}
