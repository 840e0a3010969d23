package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestKey(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, "album:"+id.Hex(), Key(id))
}

func TestRedisAlbumCache_DefaultTTL(t *testing.T) {
	c := NewRedisAlbumCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestRedisAlbumCache_OutageIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisAlbumCache(rdb, time.Minute)
	ctx := context.Background()
	id := primitive.NewObjectID()

	details := &domain.AlbumDetails{Album: domain.Album{ID: id, Title: "Blue"}}
	assert.NotPanics(t, func() {
		c.Set(ctx, details)
		c.Invalidate(ctx, id)
		c.Invalidate(ctx)
	})

	got, ok := c.Get(ctx, id)
	assert.False(t, ok)
	assert.Nil(t, got)
}
