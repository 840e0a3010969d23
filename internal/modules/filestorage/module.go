package filestorage

import (
	"context"
	"fmt"

	"github.com/saransh1220/soundwave/internal/modules/filestorage/application"
	"github.com/saransh1220/soundwave/internal/modules/filestorage/domain"
	"github.com/saransh1220/soundwave/internal/modules/filestorage/infrastructure/local"
	"github.com/saransh1220/soundwave/internal/modules/filestorage/infrastructure/s3"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/config"
)

// Module represents the FileStorage module
type Module struct {
	service   *application.AssetService
	storage   domain.FileStorage
	localPath string
}

// NewModule creates and initializes the FileStorage module
func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	var storage domain.FileStorage
	var localPath string

	if cfg.UseS3 {
		st, err := s3.NewS3Storage(ctx, s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		storage = st
	} else {
		st, err := local.NewLocalStorage(cfg.LocalPath, cfg.PublicBaseURL+"/uploads")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		storage = st
		localPath = st.BasePath()
	}

	service := application.NewAssetService(storage, application.Options{
		KeyPrefix:         cfg.KeyPrefix,
		ImageMaxDimension: cfg.ImageMaxDimension,
	})

	return &Module{
		service:   service,
		storage:   storage,
		localPath: localPath,
	}, nil
}

// Service returns the asset service for use by other modules
func (m *Module) Service() *application.AssetService {
	return m.service
}

// LocalPath is the directory to serve under /uploads/, empty when assets
// live on S3.
func (m *Module) LocalPath() string {
	return m.localPath
}
