package migration

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Migrations are MongoDB command lists in extended JSON, one file per
// direction.
//
//go:embed migrations/*.json
var migrationsFS embed.FS

// Config holds migration configuration
type Config struct {
	// DatabaseURL is a mongodb:// or mongodb+srv:// connection string.
	DatabaseURL  string
	DatabaseName string
	Logger       *zerolog.Logger
}

// Runner handles database migrations
type Runner struct {
	config *Config
	logger zerolog.Logger
}

// NewRunner creates a new migration runner
func NewRunner(config *Config) *Runner {
	logger := log.Logger
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Runner{
		config: config,
		logger: logger.With().Str("component", "migration").Logger(),
	}
}

// Up runs all pending migrations
func (r *Runner) Up() error {
	r.logger.Info().Msg("running database migrations")

	m, err := r.getMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info().Msg("no new migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info().Msg("migrations completed successfully")
	return nil
}

// Down rolls back the last migration
func (r *Runner) Down() error {
	r.logger.Info().Msg("rolling back last migration")

	m, err := r.getMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info().Msg("no migrations to roll back")
			return nil
		}
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	r.logger.Info().Msg("migration rolled back successfully")
	return nil
}

// Force sets the migration version without running migrations.
// Use this carefully to fix broken migration states
func (r *Runner) Force(version int) error {
	r.logger.Warn().Int("version", version).Msg("forcing migration version")

	m, err := r.getMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}
	return nil
}

// Version returns the current migration version
func (r *Runner) Version() (uint, bool, error) {
	m, err := r.getMigrate()
	if err != nil {
		return 0, false, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}

	return version, dirty, nil
}

func (r *Runner) getMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	dbURL, err := WithDatabase(r.config.DatabaseURL, r.config.DatabaseName)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// WithDatabase puts name into the path of a MongoDB connection string
// unless one is already there; the migrate driver reads the database from
// the path.
func WithDatabase(rawURL, name string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
	if strings.Trim(u.Path, "/") == "" {
		if name == "" {
			return "", errors.New("database name is required")
		}
		u.Path = "/" + name
	}
	return u.String(), nil
}

// AutoMigrate runs pending migrations on application start and refuses to
// continue from a dirty state.
func AutoMigrate(dbURL, dbName string, logger *zerolog.Logger) error {
	runner := NewRunner(&Config{
		DatabaseURL:  dbURL,
		DatabaseName: dbName,
		Logger:       logger,
	})

	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database in dirty state at version %d", version)
	}

	if err := runner.Up(); err != nil {
		return err
	}

	newVersion, _, err := runner.Version()
	if err != nil {
		return err
	}

	runner.logger.Info().Uint("from_version", version).Uint("to_version", newVersion).Msg("migration completed")
	return nil
}
