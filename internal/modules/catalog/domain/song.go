package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sample sizes for the discovery endpoints.
const (
	FeaturedSize   = 6
	MadeForYouSize = 4
	TrendingSize   = 4
)

type Song struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Title     string              `json:"title" bson:"title"`
	Artist    string              `json:"artist" bson:"artist"`
	Duration  float64             `json:"duration" bson:"duration"`
	AudioURL  string              `json:"audioUrl" bson:"audioUrl"`
	ImageURL  string              `json:"imageUrl" bson:"imageUrl"`
	AlbumID   *primitive.ObjectID `json:"albumId" bson:"albumId"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// AlbumRef is the slice of an album embedded in song listings.
type AlbumRef struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
}

// SongListing is a song with its album resolved; Album is nil for singles.
type SongListing struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Artist    string             `json:"artist" bson:"artist"`
	Duration  float64            `json:"duration" bson:"duration"`
	AudioURL  string             `json:"audioUrl" bson:"audioUrl"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl"`
	Album     *AlbumRef          `json:"albumId" bson:"album,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SongPreview is the reduced projection returned by the discovery endpoints.
type SongPreview struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Title    string             `json:"title" bson:"title"`
	Artist   string             `json:"artist" bson:"artist"`
	ImageURL string             `json:"imageUrl" bson:"imageUrl"`
	AudioURL string             `json:"audioUrl" bson:"audioUrl"`
}
