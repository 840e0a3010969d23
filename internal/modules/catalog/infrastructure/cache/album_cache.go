package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultTTL = 10 * time.Minute

// RedisAlbumCache stores resolved album details as JSON under album:<id>.
// Every Redis failure is logged and treated as a miss.
type RedisAlbumCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAlbumCache(client *redis.Client, ttl time.Duration) *RedisAlbumCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisAlbumCache{client: client, ttl: ttl}
}

func Key(id primitive.ObjectID) string {
	return "album:" + id.Hex()
}

func (c *RedisAlbumCache) Get(ctx context.Context, id primitive.ObjectID) (*domain.AlbumDetails, bool) {
	raw, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("album_id", id.Hex()).Msg("album cache read failed")
		}
		return nil, false
	}

	var details domain.AlbumDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		log.Warn().Err(err).Str("album_id", id.Hex()).Msg("album cache entry corrupt")
		return nil, false
	}
	log.Debug().Str("album_id", id.Hex()).Msg("album cache hit")
	return &details, true
}

func (c *RedisAlbumCache) Set(ctx context.Context, details *domain.AlbumDetails) {
	raw, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, Key(details.ID), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("album_id", details.ID.Hex()).Msg("album cache write failed")
	}
}

func (c *RedisAlbumCache) Invalidate(ctx context.Context, ids ...primitive.ObjectID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("album cache invalidation failed")
	}
}
