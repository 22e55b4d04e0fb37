package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_server/internal/config"
	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/logger"
)

func newUploadService(t *testing.T) (UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.UploadConfig{
		Dir:        dir,
		MaxSizeMB:  1,
		CVPath:     filepath.Join(dir, "cv.pdf"),
		CVFilename: "resume.pdf",
		PublicPath: "/uploads",
	}
	return NewUploadService(cfg, logger.NewNop()), dir
}

func TestUploadSave(t *testing.T) {
	t.Run("stores accepted file", func(t *testing.T) {
		svc, dir := newUploadService(t)

		content := []byte("fake png bytes")
		result, err := svc.Save("photo.png", "image/png", int64(len(content)), bytes.NewReader(content))
		require.NoError(t, err)

		assert.Contains(t, result.Filename, "photo.png")
		assert.Equal(t, "/uploads/"+result.Filename, result.URL)
		assert.Equal(t, int64(len(content)), result.Size)

		stored, err := os.ReadFile(filepath.Join(dir, result.Filename))
		require.NoError(t, err)
		assert.Equal(t, content, stored)
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		svc, _ := newUploadService(t)

		_, err := svc.Save("script.sh", "application/x-sh", 10, bytes.NewReader([]byte("#!/bin/sh")))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "file")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		svc, _ := newUploadService(t)

		_, err := svc.Save("big.png", "image/png", 2<<20, bytes.NewReader(nil))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("sanitizes hostile filenames", func(t *testing.T) {
		svc, dir := newUploadService(t)

		content := []byte("data")
		result, err := svc.Save("../../etc/pass wd!.png", "image/png", int64(len(content)), bytes.NewReader(content))
		require.NoError(t, err)

		assert.NotContains(t, result.Filename, "..")
		assert.NotContains(t, result.Filename, "/")
		assert.NotContains(t, result.Filename, " ")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my photo.png", "my_photo.png"},
		{"../../../evil.png", "evil.png"},
		{"", "upload"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestCVDownload(t *testing.T) {
	t.Run("missing cv", func(t *testing.T) {
		svc, _ := newUploadService(t)
		_, _, err := svc.CV()
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("deployed cv", func(t *testing.T) {
		svc, dir := newUploadService(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cv.pdf"), []byte("%PDF"), 0o644))

		path, filename, err := svc.CV()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "cv.pdf"), path)
		assert.Equal(t, "resume.pdf", filename)
	})
}
