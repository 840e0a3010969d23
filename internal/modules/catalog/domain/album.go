package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Album is a catalog album. Songs holds the ids of the songs whose AlbumID
// points back at this album, in insertion order.
type Album struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Artist      string               `json:"artist" bson:"artist"`
	ReleaseYear int                  `json:"releaseYear" bson:"releaseYear"`
	ImageURL    string               `json:"imageUrl" bson:"imageUrl"`
	Songs       []primitive.ObjectID `json:"songs" bson:"songs"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// AlbumDetails is an album with its song references resolved.
type AlbumDetails struct {
	Album
	Songs []Song `json:"songs"`
}

// NewAlbumDetails resolves album.Songs against songs, keeping album order
// and skipping dangling references.
func NewAlbumDetails(album Album, songs []Song) AlbumDetails {
	byID := make(map[primitive.ObjectID]Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}

	resolved := make([]Song, 0, len(album.Songs))
	for _, id := range album.Songs {
		if s, ok := byID[id]; ok {
			resolved = append(resolved, s)
		}
	}
	return AlbumDetails{Album: album, Songs: resolved}
}

// HasSong reports whether id is in the album's song list.
func (a *Album) HasSong(id primitive.ObjectID) bool {
	for _, s := range a.Songs {
		if s == id {
			return true
		}
	}
	return false
}
