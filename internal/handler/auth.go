package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/service"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
	log         logger.Logger
}

func NewAuthHandler(authService service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request: "+err.Error(), nil))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.log.Warn("Login rejected", "email", req.Email)
			c.JSON(http.StatusUnauthorized, response.Error("Invalid credentials", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Login failed", nil))
		return
	}

	h.log.Info("Admin logged in", "user_id", result.User.ID)
	c.JSON(http.StatusOK, response.Success("Logged in", result))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request: "+err.Error(), nil))
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error("Invalid or expired refresh token", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("Token refreshed", tokens))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request: "+err.Error(), nil))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.log.Warn("Logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("Logout failed", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("Logged out", nil))
}
