package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/saransh1220/soundwave/internal/shared/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAlbumRepository struct {
	coll *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) *MongoAlbumRepository {
	return &MongoAlbumRepository{coll: db.Collection(database.CollectionAlbums)}
}

func (r *MongoAlbumRepository) Create(ctx context.Context, album *domain.Album) error {
	if album.Songs == nil {
		album.Songs = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, album)
	if err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		album.ID = id
	}
	return nil
}

func (r *MongoAlbumRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Album, error) {
	var album domain.Album
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&album)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAlbumNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find album: %w", err)
	}
	return &album, nil
}

func (r *MongoAlbumRepository) List(ctx context.Context) ([]domain.Album, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	albums := []domain.Album{}
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, fmt.Errorf("decode albums: %w", err)
	}
	return albums, nil
}

// Update writes the scalar fields. The song list is only changed through
// PushSong and PullSong so concurrent song writes are not clobbered.
func (r *MongoAlbumRepository) Update(ctx context.Context, album *domain.Album) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": album.ID}, bson.M{"$set": bson.M{
		"title":       album.Title,
		"artist":      album.Artist,
		"releaseYear": album.ReleaseYear,
		"imageUrl":    album.ImageURL,
		"updatedAt":   album.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

func (r *MongoAlbumRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

func (r *MongoAlbumRepository) PushSong(ctx context.Context, albumID, songID primitive.ObjectID) error {
	return r.updateSongs(ctx, albumID, "$push", songID)
}

func (r *MongoAlbumRepository) PullSong(ctx context.Context, albumID, songID primitive.ObjectID) error {
	return r.updateSongs(ctx, albumID, "$pull", songID)
}

func (r *MongoAlbumRepository) updateSongs(ctx context.Context, albumID primitive.ObjectID, op string, songID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": albumID}, bson.M{
		op:     bson.M{"songs": songID},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("%s album song: %w", op[1:], err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}
