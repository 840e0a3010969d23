package application

import (
	"context"

	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetStore is the slice of the asset store the catalog needs. Upload
// failures wrap apperr.ErrUpload; Delete is best-effort.
type AssetStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Delete(ctx context.Context, url string) bool
}

// AlbumCache caches resolved album details. Implementations swallow their
// own errors: a cache outage degrades to a miss.
type AlbumCache interface {
	Get(ctx context.Context, id primitive.ObjectID) (*domain.AlbumDetails, bool)
	Set(ctx context.Context, details *domain.AlbumDetails)
	Invalidate(ctx context.Context, ids ...primitive.ObjectID)
}

type noopCache struct{}

func (noopCache) Get(context.Context, primitive.ObjectID) (*domain.AlbumDetails, bool) {
	return nil, false
}
func (noopCache) Set(context.Context, *domain.AlbumDetails)         {}
func (noopCache) Invalidate(context.Context, ...primitive.ObjectID) {}
