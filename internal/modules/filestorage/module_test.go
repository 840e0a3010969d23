package filestorage

import (
	"context"
	"testing"

	"github.com/saransh1220/soundwave/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/require"
)

func TestNewModule_LocalAndS3Error(t *testing.T) {
	dir := t.TempDir()
	m, err := NewModule(context.Background(), config.FileStorageConfig{
		LocalPath:     dir,
		PublicBaseURL: "http://localhost:8080",
		KeyPrefix:     "media/",
	})
	require.NoError(t, err)
	require.NotNil(t, m.Service())
	require.Equal(t, dir, m.LocalPath())

	_, err = NewModule(context.Background(), config.FileStorageConfig{UseS3: true, S3BucketName: ""})
	require.Error(t, err)
}
