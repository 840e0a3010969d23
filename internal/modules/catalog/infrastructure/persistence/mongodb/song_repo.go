package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoSongRepository struct {
	coll *mongo.Collection
}

func NewSongRepository(db *mongo.Database) *MongoSongRepository {
	return &MongoSongRepository{coll: db.Collection(database.CollectionSongs)}
}

func (r *MongoSongRepository) Create(ctx context.Context, song *domain.Song) error {
	res, err := r.coll.InsertOne(ctx, song)
	if err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		song.ID = id
	}
	return nil
}

func (r *MongoSongRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Song, error) {
	var song domain.Song
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find song: %w", err)
	}
	return &song, nil
}

func (r *MongoSongRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Song, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find songs: %w", err)
	}
	var songs []domain.Song
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	return songs, nil
}

// ListWithAlbums returns all songs newest first, joining each with its album.
func (r *MongoSongRepository) ListWithAlbums(ctx context.Context) ([]domain.SongListing, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollectionAlbums},
			{Key: "localField", Value: "albumId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "album"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "album", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$album", 0}}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	songs := []domain.SongListing{}
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	return songs, nil
}

// Sample draws up to size songs with the server-side $sample stage.
func (r *MongoSongRepository) Sample(ctx context.Context, size int) ([]domain.SongPreview, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "artist", Value: 1},
			{Key: "imageUrl", Value: 1},
			{Key: "audioUrl", Value: 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample songs: %w", err)
	}
	previews := []domain.SongPreview{}
	if err := cursor.All(ctx, &previews); err != nil {
		return nil, fmt.Errorf("decode samples: %w", err)
	}
	return previews, nil
}

func (r *MongoSongRepository) Update(ctx context.Context, song *domain.Song) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": song.ID}, bson.M{"$set": bson.M{
		"title":     song.Title,
		"artist":    song.Artist,
		"duration":  song.Duration,
		"audioUrl":  song.AudioURL,
		"imageUrl":  song.ImageURL,
		"albumId":   song.AlbumID,
		"updatedAt": song.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

func (r *MongoSongRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

func (r *MongoSongRepository) DeleteByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"albumId": albumID})
	if err != nil {
		return 0, fmt.Errorf("delete album songs: %w", err)
	}
	return res.DeletedCount, nil
}
