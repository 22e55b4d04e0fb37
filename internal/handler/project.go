package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/domain"
	"portfolio_server/internal/service"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type ProjectHandler struct {
	projectService service.ProjectService
	log            logger.Logger
}

func NewProjectHandler(projectService service.ProjectService, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	filter := domain.ProjectFilter{
		FeaturedOnly: c.Query("featured") == "true",
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	projects, err := h.projectService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to list projects", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("", projects))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid project id", nil))
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, response.Error("Project not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to load project", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("", project))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var project domain.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request body", nil))
		return
	}

	created, err := h.projectService.Create(c.Request.Context(), &project)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, response.Error("Validation failed", verr.Fields))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create project", nil))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Project created", created))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid project id", nil))
		return
	}

	var project domain.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request body", nil))
		return
	}
	project.ID = id

	updated, err := h.projectService.Update(c.Request.Context(), &project)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, response.Error("Validation failed", verr.Fields))
		case errors.Is(err, apperrors.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, response.Error("Project not found", nil))
		default:
			c.JSON(http.StatusInternalServerError, response.Error("Failed to update project", nil))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success("Project updated", updated))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid project id", nil))
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, response.Error("Project not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete project", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("Project deleted", nil))
}
