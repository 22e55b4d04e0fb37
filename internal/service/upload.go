package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"portfolio_server/internal/config"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

// UploadService stores files on the local filesystem under the configured
// upload directory and serves the CV for download.
type UploadService interface {
	Save(filename, contentType string, size int64, src io.Reader) (*UploadResult, error)
	// CV returns the on-disk path and the download filename for the
	// resume, or apperrors.ErrNotFound when it isn't deployed.
	CV() (path, filename string, err error)
}

type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type uploadService struct {
	cfg config.UploadConfig
	log logger.Logger
}

func NewUploadService(cfg config.UploadConfig, log logger.Logger) UploadService {
	return &uploadService{cfg: cfg, log: log}
}

func (s *uploadService) Save(filename, contentType string, size int64, src io.Reader) (*UploadResult, error) {
	if _, ok := allowedUploadTypes[contentType]; !ok {
		return nil, &ValidationError{Fields: map[string]string{
			"file": "unsupported file type; allowed: jpeg, png, webp, pdf",
		}}
	}

	maxBytes := int64(s.cfg.MaxSizeMB) << 20
	if size > maxBytes {
		return nil, &ValidationError{Fields: map[string]string{
			"file": fmt.Sprintf("file exceeds %dMB limit", s.cfg.MaxSizeMB),
		}}
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.log.Error("Failed to create upload directory", "error", err)
		return nil, err
	}

	name := sanitizeFilename(filename)
	stored := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), name)
	dst, err := os.Create(filepath.Join(s.cfg.Dir, stored))
	if err != nil {
		s.log.Error("Failed to create upload file", "error", err)
		return nil, err
	}
	defer dst.Close()

	// LimitReader guards against a lying Content-Length.
	written, err := io.Copy(dst, io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if written > maxBytes {
		os.Remove(dst.Name())
		return nil, &ValidationError{Fields: map[string]string{
			"file": fmt.Sprintf("file exceeds %dMB limit", s.cfg.MaxSizeMB),
		}}
	}

	return &UploadResult{
		Filename: stored,
		URL:      strings.TrimRight(s.cfg.PublicPath, "/") + "/" + stored,
		Size:     written,
	}, nil
}

func (s *uploadService) CV() (string, string, error) {
	if _, err := os.Stat(s.cfg.CVPath); err != nil {
		return "", "", apperrors.ErrNotFound
	}
	return s.cfg.CVPath, s.cfg.CVFilename, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "upload"
	}
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return name
}
