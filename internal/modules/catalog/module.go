package catalog

import (
	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/soundwave/internal/modules/catalog/application"
	"github.com/saransh1220/soundwave/internal/modules/catalog/infrastructure/cache"
	"github.com/saransh1220/soundwave/internal/modules/catalog/infrastructure/persistence/mongodb"
	catalogHttp "github.com/saransh1220/soundwave/internal/modules/catalog/interfaces/http"
	"go.mongodb.org/mongo-driver/mongo"
)

// Options configure the catalog module.
type Options struct {
	// Redis enables the album details cache when non-nil.
	Redis     *redis.Client
	TempDir   string
	MaxUpload int64
}

// Module represents the Catalog module
type Module struct {
	albums  *application.AlbumService
	songs   *application.SongService
	handler *catalogHttp.CatalogHandler
}

// NewModule creates and initializes the Catalog module
func NewModule(db *mongo.Database, assets application.AssetStore, opts Options) *Module {
	albumRepo := mongodb.NewAlbumRepository(db)
	songRepo := mongodb.NewSongRepository(db)

	var albumCache application.AlbumCache
	if opts.Redis != nil {
		albumCache = cache.NewRedisAlbumCache(opts.Redis, cache.DefaultTTL)
	}

	albums := application.NewAlbumService(albumRepo, songRepo, assets, albumCache)
	songs := application.NewSongService(songRepo, albumRepo, assets, albumCache)

	return &Module{
		albums:  albums,
		songs:   songs,
		handler: catalogHttp.NewCatalogHandler(albums, songs, opts.TempDir, opts.MaxUpload),
	}
}

func (m *Module) AlbumService() *application.AlbumService {
	return m.albums
}

func (m *Module) SongService() *application.SongService {
	return m.songs
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *catalogHttp.CatalogHandler {
	return m.handler
}
