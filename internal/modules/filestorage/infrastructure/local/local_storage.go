package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saransh1220/soundwave/internal/modules/filestorage/domain"
)

// LocalStorage implements domain.FileStorage on the local filesystem. Files
// are served back by the gateway under baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new local filesystem storage
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// UploadFile writes the file under basePath/key.
func (l *LocalStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return l.baseURL + "/" + key, nil
}

// DeleteAsset removes every file named assetID.* under the prefix directory.
func (l *LocalStorage) DeleteAsset(ctx context.Context, keyPrefix, assetID string) (int, error) {
	pattern := filepath.Join(l.basePath, filepath.FromSlash(keyPrefix+assetID)) + "*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, path := range matches {
		if !domain.MatchesAssetID(filepath.ToSlash(path), assetID) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return deleted, fmt.Errorf("failed to delete %s: %w", filepath.Base(path), err)
		}
		deleted++
	}
	return deleted, nil
}

// BasePath is the directory the gateway serves uploads from.
func (l *LocalStorage) BasePath() string {
	return l.basePath
}
