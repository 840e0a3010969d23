package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saransh1220/soundwave/internal/gateway/middleware"
	auth_http "github.com/saransh1220/soundwave/internal/modules/auth/interfaces/http"
	catalog_http "github.com/saransh1220/soundwave/internal/modules/catalog/interfaces/http"
	messaging_http "github.com/saransh1220/soundwave/internal/modules/messaging/interfaces/http"
	stats_http "github.com/saransh1220/soundwave/internal/modules/stats/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	AuthHandler    *auth_http.AuthHandler
	AuthMiddleware *middleware.AuthMiddleWare
	CatalogHandler *catalog_http.CatalogHandler
	MessageHandler *messaging_http.MessageHandler
	StatsHandler   *stats_http.StatsHandler

	// UploadsDir is served under /uploads/ when assets are stored locally.
	UploadsDir string
	// Ready, when set, backs /health with a dependency check.
	Ready func(ctx context.Context) error
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	auth := config.AuthMiddleware

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if config.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := config.Ready(ctx); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	if config.UploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadsDir))))
	}

	// Identity
	mux.HandleFunc("POST /callback", config.AuthHandler.Callback)
	mux.Handle("GET /getUser", auth.RequireAuth(http.HandlerFunc(config.AuthHandler.GetUser)))
	mux.Handle("GET /users", auth.RequireAuth(http.HandlerFunc(config.AuthHandler.ListUsers)))

	// Messaging
	mux.Handle("GET /message/{userId}", auth.RequireAuth(http.HandlerFunc(config.MessageHandler.GetMessages)))
	mux.Handle("GET /ws", auth.RequireAuth(http.HandlerFunc(config.MessageHandler.Subscribe)))

	// Albums
	mux.Handle("POST /album", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.CreateAlbum)))
	mux.HandleFunc("GET /getAlbum", config.CatalogHandler.ListAlbums)
	mux.HandleFunc("GET /getAlbum/{albumId}", config.CatalogHandler.GetAlbum)
	mux.Handle("PATCH /update-album/{albumId}", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.UpdateAlbum)))
	mux.Handle("DELETE /delete-album/{id}", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.DeleteAlbum)))

	// Songs
	mux.Handle("POST /song", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.CreateSong)))
	mux.Handle("GET /getSong", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.ListSongs)))
	mux.HandleFunc("GET /featured", config.CatalogHandler.Featured)
	mux.HandleFunc("GET /made-for-you", config.CatalogHandler.MadeForYou)
	mux.HandleFunc("GET /trending", config.CatalogHandler.Trending)
	mux.Handle("PATCH /update-song/{id}", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.UpdateSong)))
	mux.Handle("DELETE /delete-song/{id}", auth.RequireAdmin(http.HandlerFunc(config.CatalogHandler.DeleteSong)))

	// Stats
	mux.Handle("GET /stats", auth.RequireAdmin(http.HandlerFunc(config.StatsHandler.GetStats)))

	return mux
}

// Chain wraps the route mux with the cross-cutting middleware. Metrics sit
// closest to the mux so they can label requests by route pattern.
func Chain(mux http.Handler, allowedOrigins string) http.Handler {
	h := middleware.PrometheusMiddleware(mux)
	h = middleware.CORSMiddleware(h, allowedOrigins)
	h = middleware.Recoverer(h)
	return middleware.RequestLogger(h)
}
