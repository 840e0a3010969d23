package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/database"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Mongo       database.MongoConfig
	Redis       database.RedisConfig
	JWT         JWTConfig
	Identity    IdentityConfig
	FileStorage FileStorageConfig
	Uploads     UploadConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
	MigrateOnStart bool
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// IdentityConfig holds identity provider configuration
type IdentityConfig struct {
	GoogleClientID string
	AdminEmails    []string
}

// FileStorageConfig holds asset store configuration
type FileStorageConfig struct {
	UseS3             bool
	S3Region          string
	S3Endpoint        string
	S3PublicEndpoint  string
	S3AccessKey       string
	S3SecretKey       string
	S3BucketName      string
	S3UseSSL          bool
	KeyPrefix         string
	LocalPath         string
	PublicBaseURL     string
	ImageMaxDimension int
}

// UploadConfig holds multipart spooling configuration
type UploadConfig struct {
	TempDir       string
	MaxSize       int64
	MaxFileAge    time.Duration
	SweepInterval time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment wins.
func Load() Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	return Config{
		Server: ServerConfig{
			Port:           port,
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", getEnv("CLIENT_URL", "http://localhost:3000")),
			MigrateOnStart: getEnv("MIGRATE_ON_START", "true") == "true",
		},
		Mongo: database.MongoConfig{
			URI:            getEnv("MONGO_URI", getEnv("DATABASE", "mongodb://localhost:27017")),
			Database:       getEnv("MONGO_DATABASE", "soundwave"),
			ConnectTimeout: parseDuration(getEnv("MONGO_CONNECT_TIMEOUT", "10s"), 10*time.Second),
		},
		Redis: database.RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "true") == "true",
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default-dev-secret"),
			Expiry: parseDuration(getEnv("JWT_EXPIRATION", "24h"), 24*time.Hour),
		},
		Identity: IdentityConfig{
			GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
			AdminEmails:    splitList(getEnv("ADMIN_EMAILS", getEnv("ADMIN_EMAIL", ""))),
		},
		FileStorage: FileStorageConfig{
			UseS3:             getEnv("USE_S3", "false") == "true",
			S3Region:          getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:        getEnv("S3_ENDPOINT", ""),
			S3PublicEndpoint:  getEnv("S3_PUBLIC_ENDPOINT", getEnv("S3_ENDPOINT", "")),
			S3AccessKey:       getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:       getEnv("S3_SECRET_KEY", ""),
			S3BucketName:      getEnv("S3_BUCKET", ""),
			S3UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
			KeyPrefix:         getEnv("ASSET_KEY_PREFIX", "media/"),
			LocalPath:         getEnv("LOCAL_STORAGE_PATH", "./uploads"),
			PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
			ImageMaxDimension: parseInt(getEnv("IMAGE_MAX_DIMENSION", "1000"), 1000),
		},
		Uploads: UploadConfig{
			TempDir:       getEnv("TEMP_DIR", os.TempDir()),
			MaxSize:       int64(parseInt(getEnv("MAX_UPLOAD_SIZE", "100"), 100)) << 20,
			MaxFileAge:    parseDuration(getEnv("TEMP_FILE_MAX_AGE", "1h"), time.Hour),
			SweepInterval: parseDuration(getEnv("TEMP_SWEEP_INTERVAL", "1h"), time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
