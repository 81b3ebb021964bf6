package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"edusync/backend/config"
)

// AzureStore stores media in an Azure Blob Storage container.
type AzureStore struct {
	client    *azblob.Client
	container string
}

// NewAzureStore creates a client from a storage account connection string.
func NewAzureStore(cfg config.AzureConfig) (*AzureStore, error) {
	if cfg.ConnectionString == "" {
		return nil, errors.New("storage: azure connection string is required")
	}
	if cfg.Container == "" {
		return nil, errors.New("storage: azure container is required")
	}

	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: azure client: %w", err)
	}

	return &AzureStore{client: client, container: cfg.Container}, nil
}

func (s *AzureStore) Provider() string { return "azure" }

func (s *AzureStore) EnsureContainer(ctx context.Context) error {
	access := azblob.PublicAccessTypeBlob
	_, err := s.client.CreateContainer(ctx, s.container, &azblob.CreateContainerOptions{Access: &access})
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return err
	}
	return nil
}

func (s *AzureStore) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}

	if _, err := s.client.UploadStream(ctx, s.container, name, r, opts); err != nil {
		return "", fmt.Errorf("storage: azure upload %s: %w", name, err)
	}

	return s.blobURL(name), nil
}

func (s *AzureStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("storage: azure delete %s: %w", name, err)
	}
	return nil
}

func (s *AzureStore) ObjectName(rawURL string) (string, bool) {
	prefix := s.blobURL("")
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	name, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

func (s *AzureStore) blobURL(name string) string {
	return strings.TrimRight(s.client.URL(), "/") + "/" + s.container + "/" + url.PathEscape(name)
}
