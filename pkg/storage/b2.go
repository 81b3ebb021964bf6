package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kurin/blazer/b2"

	"edusync/backend/config"
)

// B2Store stores media in a public Backblaze B2 bucket.
type B2Store struct {
	client     *b2.Client
	bucketName string
	bucket     *b2.Bucket
}

// NewB2Store authorizes against B2. The bucket is resolved by EnsureContainer.
func NewB2Store(ctx context.Context, cfg config.B2Config) (*B2Store, error) {
	if cfg.AccountID == "" || cfg.ApplicationKey == "" {
		return nil, errors.New("storage: b2 account id and application key are required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage: b2 bucket is required")
	}

	client, err := b2.NewClient(ctx, cfg.AccountID, cfg.ApplicationKey)
	if err != nil {
		return nil, fmt.Errorf("storage: b2 client: %w", err)
	}

	return &B2Store{client: client, bucketName: cfg.Bucket}, nil
}

func (s *B2Store) Provider() string { return "b2" }

func (s *B2Store) EnsureContainer(ctx context.Context) error {
	bucket, err := s.client.NewBucket(ctx, s.bucketName, &b2.BucketAttrs{Type: b2.Public})
	if err != nil {
		return err
	}
	s.bucket = bucket
	return nil
}

func (s *B2Store) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	if s.bucket == nil {
		return "", errors.New("storage: b2 bucket not initialised")
	}

	obj := s.bucket.Object(name)
	w := obj.NewWriter(ctx, b2.WithAttrsOption(&b2.Attrs{ContentType: contentType}))

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("storage: b2 write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: b2 close %s: %w", name, err)
	}

	return obj.URL(), nil
}

func (s *B2Store) Delete(ctx context.Context, name string) error {
	if s.bucket == nil {
		return errors.New("storage: b2 bucket not initialised")
	}
	if err := s.bucket.Object(name).Delete(ctx); err != nil && !b2.IsNotExist(err) {
		return fmt.Errorf("storage: b2 delete %s: %w", name, err)
	}
	return nil
}

func (s *B2Store) ObjectName(rawURL string) (string, bool) {
	if s.bucket == nil {
		return "", false
	}
	prefix := strings.TrimSuffix(s.bucket.Object("x").URL(), "x")
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(rawURL, prefix)
	return name, name != ""
}
