package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edusync/backend/config"
	"edusync/backend/internal/dto"
)

const fakeStoreBase = "https://blobs.example.com/course-media/"

// fakeStore is an in-memory storage.BlobStore.
type fakeStore struct {
	objects     map[string]string
	types       map[string]string
	deleted     []string
	uploadErr   error
	ctxCanceled bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}, types: map[string]string{}}
}

func (f *fakeStore) Provider() string                      { return "fake" }
func (f *fakeStore) EnsureContainer(context.Context) error { return nil }

func (f *fakeStore) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	f.ctxCanceled = ctx.Err() != nil
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[name] = string(b)
	f.types[name] = contentType
	return fakeStoreBase + name, nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	delete(f.objects, name)
	return nil
}

func (f *fakeStore) ObjectName(url string) (string, bool) {
	if !strings.HasPrefix(url, fakeStoreBase) {
		return "", false
	}
	return strings.TrimPrefix(url, fakeStoreBase), true
}

func newTestMediaService(store *fakeStore, maxBytes int64) MediaService {
	cfg := &config.StorageConfig{MaxUploadBytes: maxBytes}
	if store == nil {
		return NewMediaService(cfg, nil, testLogger)
	}
	return NewMediaService(cfg, store, testLogger)
}

// ── Upload ──

func TestMediaService_Upload(t *testing.T) {
	store := newFakeStore()
	svc := newTestMediaService(store, 1<<20)

	resp, err := svc.Upload(context.Background(), strings.NewReader("video-bytes"), 11, "My Lecture (1).png", "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.MediaURL, fakeStoreBase))

	name := strings.TrimPrefix(resp.MediaURL, fakeStoreBase)
	assert.True(t, strings.HasSuffix(name, "_My_Lecture_1.png"), "object name %q", name)
	assert.Equal(t, "video-bytes", store.objects[name])
	assert.Equal(t, "image/png", store.types[name])
}

func TestMediaService_Upload_DetachedFromRequest(t *testing.T) {
	store := newFakeStore()
	svc := newTestMediaService(store, 1<<20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Upload(ctx, strings.NewReader("abc"), 3, "notes.txt", "text/plain")
	require.NoError(t, err)
	assert.False(t, store.ctxCanceled, "upload must not observe request cancellation")
}

func TestMediaService_Upload_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		body    io.Reader
		size    int64
		wantErr error
	}{
		{"empty file", newFakeStore(), strings.NewReader(""), 0, ErrNoFile},
		{"no reader", newFakeStore(), nil, 10, ErrNoFile},
		{"over the limit", newFakeStore(), strings.NewReader("0123456789x"), 11, ErrFileTooLarge},
		{"storage not configured", nil, strings.NewReader("abc"), 3, ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestMediaService(tt.store, 10)
			_, err := svc.Upload(context.Background(), tt.body, tt.size, "a.bin", "")
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.store != nil {
				assert.Empty(t, tt.store.objects)
			}
		})
	}
}

func TestMediaService_Upload_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.New("connection reset")
	svc := newTestMediaService(store, 1<<20)

	_, err := svc.Upload(context.Background(), strings.NewReader("abc"), 3, "a.txt", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.uploadErr)
}

// ── CheckStorage ──

func TestMediaService_CheckStorage(t *testing.T) {
	store := newFakeStore()
	svc := newTestMediaService(store, 1<<20)

	resp, err := svc.CheckStorage(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, store.objects, 1)

	_, err = newTestMediaService(nil, 1<<20).CheckStorage(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

// ── CheckYouTube ──

func TestMediaService_CheckYouTube(t *testing.T) {
	svc := newTestMediaService(nil, 1<<20)

	_, err := svc.CheckYouTube(context.Background(), &dto.YouTubeCheckRequest{URL: "   "})
	assert.ErrorIs(t, err, ErrNoURL)

	resp, err := svc.CheckYouTube(context.Background(), &dto.YouTubeCheckRequest{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "YouTube URL accepted", resp.Message)
	assert.Equal(t, "dQw4w9WgXcQ", resp.VideoID)
}

func TestYouTubeVideoID(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":          "dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s":        "dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ":            "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                         "dQw4w9WgXcQ",
		"youtu.be/dQw4w9WgXcQ?si=abc":                          "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":            "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ/x": "dQw4w9WgXcQ",
		"https://invalid-url.com/not-youtube":                  "",
		"https://www.youtube.com/watch?v=short":                "",
		"https://www.youtube.com/":                             "",
	}

	for raw, want := range tests {
		assert.Equal(t, want, YouTubeVideoID(raw), raw)
	}
}

// ── Remove ──

func TestMediaService_Remove(t *testing.T) {
	store := newFakeStore()
	svc := newTestMediaService(store, 1<<20)

	require.NoError(t, svc.Remove(context.Background(), fakeStoreBase+"abc_video.mp4"))
	require.NoError(t, svc.Remove(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	require.NoError(t, svc.Remove(context.Background(), ""))

	assert.Equal(t, []string{"abc_video.mp4"}, store.deleted)
}
