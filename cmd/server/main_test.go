package main

import (
	"context"
	"testing"

	"github.com/saransh1220/soundwave/internal/shared/infrastructure/config"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRedis_Disabled(t *testing.T) {
	assert.Nil(t, openRedis(context.Background(), database.RedisConfig{Enabled: false}))
}

func TestOpenRedis_Unreachable(t *testing.T) {
	assert.Nil(t, openRedis(context.Background(), database.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}))
}

func TestRun_FailsWithoutDatabaseName(t *testing.T) {
	cfg := config.Config{}
	cfg.Mongo = database.MongoConfig{URI: "mongodb://127.0.0.1:1"}

	err := run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database name is required")
}
