package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"edusync/backend/config"
	"edusync/backend/internal/dto"
	"edusync/backend/pkg/metrics"
	"edusync/backend/pkg/storage"
)

var (
	ErrNoFile             = errors.New("no file provided")
	ErrFileTooLarge       = errors.New("file exceeds the upload size limit")
	ErrStorageUnavailable = errors.New("blob storage is not configured")
	ErrNoURL              = errors.New("no URL provided")
)

// MediaService stores course media in the configured blob container.
type MediaService interface {
	// Upload stores r under a unique object name and returns its public URL.
	Upload(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*dto.MediaUploadResponse, error)
	// CheckStorage uploads a small text object to prove the container is writable.
	CheckStorage(ctx context.Context) (*dto.BlobCheckResponse, error)
	CheckYouTube(ctx context.Context, req *dto.YouTubeCheckRequest) (*dto.YouTubeCheckResponse, error)
	// Remove deletes a blob previously returned by Upload. URLs from other
	// hosts are ignored.
	Remove(ctx context.Context, mediaURL string) error
}

type mediaService struct {
	store    storage.BlobStore
	maxBytes int64
	logger   *zap.Logger
}

// NewMediaService creates a MediaService. store may be nil.
func NewMediaService(cfg *config.StorageConfig, store storage.BlobStore, logger *zap.Logger) MediaService {
	return &mediaService{store: store, maxBytes: cfg.MaxUploadBytes, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *mediaService) Upload(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*dto.MediaUploadResponse, error) {
	if r == nil || size <= 0 {
		return nil, ErrNoFile
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	name := storage.ObjectName(filename)
	contentType = detectContentType(filename, contentType)

	// The upload outlives a client disconnect.
	publicURL, err := s.store.Upload(context.WithoutCancel(ctx), name, io.LimitReader(r, size), contentType)
	metrics.RecordMediaUpload(s.store.Provider(), size, err)
	if err != nil {
		s.logger.Error("media upload failed",
			zap.String("provider", s.store.Provider()),
			zap.String("object", name),
			zap.Int64("size", size),
			zap.Error(err),
		)
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	s.logger.Info("media uploaded",
		zap.String("provider", s.store.Provider()),
		zap.String("object", name),
		zap.Int64("size", size),
	)
	return &dto.MediaUploadResponse{MediaURL: publicURL}, nil
}

// ────────────────────── CheckStorage ──────────────────────

func (s *mediaService) CheckStorage(ctx context.Context) (*dto.BlobCheckResponse, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	content := "This is a test file from EduSync " + time.Now().UTC().Format(time.RFC3339)
	name := storage.ObjectName("test.txt")

	publicURL, err := s.store.Upload(ctx, name, strings.NewReader(content), "text/plain")
	if err != nil {
		s.logger.Error("blob storage check failed", zap.String("provider", s.store.Provider()), zap.Error(err))
		return nil, fmt.Errorf("storage check: %w", err)
	}

	return &dto.BlobCheckResponse{
		Success: true,
		Message: "Blob storage connection working!",
		URL:     publicURL,
	}, nil
}

// ────────────────────── CheckYouTube ──────────────────────

func (s *mediaService) CheckYouTube(_ context.Context, req *dto.YouTubeCheckRequest) (*dto.YouTubeCheckResponse, error) {
	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		return nil, ErrNoURL
	}

	return &dto.YouTubeCheckResponse{
		Success: true,
		Message: "YouTube URL accepted",
		VideoID: YouTubeVideoID(raw),
	}, nil
}

// ────────────────────── Remove ──────────────────────

func (s *mediaService) Remove(ctx context.Context, mediaURL string) error {
	if s.store == nil || mediaURL == "" {
		return nil
	}
	name, ok := s.store.ObjectName(mediaURL)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	s.logger.Info("media removed", zap.String("object", name))
	return nil
}

// ── helpers ──

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeVideoID extracts the 11 character video id from the common YouTube
// URL forms. It returns "" when none is found.
func YouTubeVideoID(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com", "music.youtube.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
			break
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id = strings.TrimPrefix(u.Path, prefix)
				break
			}
		}
	}

	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if !videoIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// detectContentType keeps the client's type unless it is missing or generic,
// then guesses from the extension.
func detectContentType(filename, contentType string) string {
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); t != "" {
		return t
	}
	return "application/octet-stream"
}
