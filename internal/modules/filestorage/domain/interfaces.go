package domain

import (
	"context"
	"io"
)

// FileStorage defines the interface for the media host backing the asset store.
// This can be implemented by S3, MinIO, local filesystem, etc.
type FileStorage interface {
	// UploadFile uploads a file with the given key and returns the permanent URL
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)

	// DeleteAsset removes every object under keyPrefix whose name is assetID
	// (any extension) and returns how many were removed
	DeleteAsset(ctx context.Context, keyPrefix, assetID string) (int, error)
}
