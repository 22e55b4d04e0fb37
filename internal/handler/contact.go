package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_server/internal/service"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"
)

type ContactHandler struct {
	contactService service.ContactService
	log            logger.Logger
}

func NewContactHandler(contactService service.ContactService, log logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		log:            log,
	}
}

// Submit is the public contact form endpoint.
func (h *ContactHandler) Submit(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request body", nil))
		return
	}

	submission, err := h.contactService.Submit(c.Request.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, response.Error("Validation failed", verr.Fields))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to submit message", nil))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Message sent successfully", submission))
}

func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	unreadOnly := c.Query("unread") == "true"

	submissions, pagination, err := h.contactService.List(c.Request.Context(), page, limit, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to list submissions", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("", gin.H{
		"submissions": submissions,
		"pagination":  pagination,
	}))
}

type updateContactRequest struct {
	IsRead    *bool `json:"is_read"`
	IsReplied *bool `json:"is_replied"`
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid submission id", nil))
		return
	}

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request body", nil))
		return
	}

	submission, err := h.contactService.UpdateFlags(c.Request.Context(), id, req.IsRead, req.IsReplied)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSubmissionNotFound):
			c.JSON(http.StatusNotFound, response.Error("Submission not found", nil))
		case errors.Is(err, apperrors.ErrBadRequest):
			c.JSON(http.StatusBadRequest, response.Error("Nothing to update", nil))
		default:
			c.JSON(http.StatusInternalServerError, response.Error("Failed to update submission", nil))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success("Submission updated", submission))
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid submission id", nil))
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, response.Error("Submission not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete submission", nil))
		return
	}

	c.JSON(http.StatusOK, response.Success("Submission deleted", nil))
}
