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

type UploadHandler struct {
	uploadService service.UploadService
	log           logger.Logger
}

func NewUploadHandler(uploadService service.UploadService, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		log:           log,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("No file provided", nil))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to read file", nil))
		return
	}
	defer src.Close()

	result, err := h.uploadService.Save(
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, response.Error("Validation failed", verr.Fields))
			return
		}
		h.log.Error("Upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("Failed to store file", nil))
		return
	}

	c.JSON(http.StatusCreated, response.Success("File uploaded", result))
}

// DownloadCV streams the resume as an attachment.
func (h *UploadHandler) DownloadCV(c *gin.Context) {
	path, filename, err := h.uploadService.CV()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Error("CV not available", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to load CV", nil))
		return
	}

	c.FileAttachment(path, filename)
}
