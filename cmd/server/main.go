package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/gateway"
	"github.com/saransh1220/soundwave/internal/gateway/middleware"
	"github.com/saransh1220/soundwave/internal/modules/auth"
	"github.com/saransh1220/soundwave/internal/modules/catalog"
	"github.com/saransh1220/soundwave/internal/modules/filestorage"
	"github.com/saransh1220/soundwave/internal/modules/messaging"
	"github.com/saransh1220/soundwave/internal/modules/stats"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/config"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/database"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/tempfiles"
	"github.com/saransh1220/soundwave/internal/shared/logging"
	"github.com/saransh1220/soundwave/pkg/migration"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultJWTSecret = "default-dev-secret"

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.JWT.Secret == defaultJWTSecret {
		log.Warn().Msg("JWT_SECRET not set, using the development default")
	}
	if cfg.Identity.GoogleClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set, identity callbacks will be rejected")
	}

	client, db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	if cfg.Server.MigrateOnStart {
		if err := migration.AutoMigrate(cfg.Mongo.URI, cfg.Mongo.Database, nil); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	rdb := openRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	storage, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		return err
	}

	catalogModule := catalog.NewModule(db, storage.Service(), catalog.Options{
		Redis:     rdb,
		TempDir:   cfg.Uploads.TempDir,
		MaxUpload: cfg.Uploads.MaxSize,
	})
	authModule := auth.NewModule(db, auth.Options{
		GoogleClientID: cfg.Identity.GoogleClientID,
		AdminEmails:    cfg.Identity.AdminEmails,
		JWTSecret:      cfg.JWT.Secret,
		JWTExpiry:      cfg.JWT.Expiry,
	})
	messagingModule := messaging.NewModule(db)
	defer messagingModule.Stop()
	statsModule := stats.NewModule(db)

	mux := gateway.SetupRoutes(gateway.RouterConfig{
		AuthHandler:    authModule.HTTPHandler(),
		AuthMiddleware: middleware.NewAuthMiddleware(authModule.Service(), authModule.Service()),
		CatalogHandler: catalogModule.HTTPHandler(),
		MessageHandler: messagingModule.HTTPHandler(),
		StatsHandler:   statsModule.StatsHandler,
		UploadsDir:     storage.LocalPath(),
		Ready: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	})

	sweeper := tempfiles.NewSweeper(cfg.Uploads.TempDir, cfg.Uploads.MaxFileAge, cfg.Uploads.SweepInterval)
	go sweeper.Run(ctx)

	server := gateway.NewServer(cfg.Server.Port, gateway.Chain(mux, cfg.Server.AllowedOrigins))
	return server.Run(ctx)
}

// openRedis returns nil when the cache is disabled or unreachable; the
// catalog then reads straight from Mongo.
func openRedis(ctx context.Context, cfg database.RedisConfig) *redis.Client {
	rdb, err := database.NewRedis(ctx, cfg)
	switch {
	case errors.Is(err, database.ErrRedisDisabled):
		log.Info().Msg("redis disabled, album cache off")
		return nil
	case err != nil:
		log.Warn().Err(err).Msg("redis unavailable, album cache off")
		return nil
	}
	return rdb
}
