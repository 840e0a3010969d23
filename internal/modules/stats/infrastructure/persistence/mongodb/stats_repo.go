package mongodb

import (
	"context"
	"fmt"

	"github.com/saransh1220/soundwave/internal/shared/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountSongs(ctx context.Context) (int64, error) {
	return r.count(ctx, database.CollectionSongs)
}

func (r *StatsRepository) CountAlbums(ctx context.Context) (int64, error) {
	return r.count(ctx, database.CollectionAlbums)
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, database.CollectionUsers)
}

func (r *StatsRepository) count(ctx context.Context, coll string) (int64, error) {
	n, err := r.db.Collection(coll).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll, err)
	}
	return n, nil
}

// CountArtists unions the artist field of songs and albums and counts the
// distinct names.
func (r *StatsRepository) CountArtists(ctx context.Context) (int64, error) {
	artistOnly := bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}, {Key: "artist", Value: 1}}}}
	pipeline := mongo.Pipeline{
		artistOnly,
		{{Key: "$unionWith", Value: bson.D{
			{Key: "coll", Value: database.CollectionAlbums},
			{Key: "pipeline", Value: bson.A{artistOnly}},
		}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$artist"}}}},
		{{Key: "$count", Value: "count"}},
	}

	cursor, err := r.db.Collection(database.CollectionSongs).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count artists: %w", err)
	}
	var rows []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode artist count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}
