// Package storage uploads course media to a public blob container.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"edusync/backend/config"
)

// ErrNotConfigured is returned by New when no provider is selected.
var ErrNotConfigured = errors.New("storage: no provider configured")

// BlobStore is a public-read blob container.
type BlobStore interface {
	// Provider names the backend for logs and metrics.
	Provider() string
	// EnsureContainer creates the container with public read access if absent.
	EnsureContainer(ctx context.Context) error
	// Upload writes r under name and returns the public URL.
	Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	// Delete removes name. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
	// ObjectName extracts the object name from a URL this store produced.
	ObjectName(url string) (string, bool)
}

// New builds the configured backend and makes sure its container exists.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (BlobStore, error) {
	var (
		store BlobStore
		err   error
	)

	switch cfg.Provider {
	case "azure":
		store, err = NewAzureStore(cfg.Azure)
	case "b2":
		store, err = NewB2Store(ctx, cfg.B2)
	case "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if err := store.EnsureContainer(ctx); err != nil {
		return nil, fmt.Errorf("storage: ensure container: %w", err)
	}

	logger.Info("blob storage ready", zap.String("provider", store.Provider()))
	return store, nil
}

// ObjectName returns "<uuid>_<sanitized base name>" for an uploaded file.
func ObjectName(filename string) string {
	return uuid.NewString() + "_" + SanitizeFilename(filename)
}

// SanitizeFilename strips directories, replaces whitespace with underscores
// and drops characters outside [A-Za-z0-9._-].
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}

	name := strings.TrimLeft(b.String(), ".")
	if name == "" {
		return "file"
	}
	return name
}
