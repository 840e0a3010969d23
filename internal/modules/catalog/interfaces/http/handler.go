package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/catalog/application"
	"github.com/saransh1220/soundwave/internal/modules/catalog/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"github.com/saransh1220/soundwave/internal/shared/utils"
)

type CatalogHandler struct {
	albums    AlbumService
	songs     SongService
	tempDir   string
	maxUpload int64
}

func NewCatalogHandler(albums AlbumService, songs SongService, tempDir string, maxUpload int64) *CatalogHandler {
	return &CatalogHandler{
		albums:    albums,
		songs:     songs,
		tempDir:   tempDir,
		maxUpload: maxUpload,
	}
}

// POST /album
func (h *CatalogHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	form, err := parseUploadForm(w, r, h.tempDir, h.maxUpload, "imageFile")
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	defer form.cleanup()

	album, err := h.albums.Create(r.Context(), application.CreateAlbumInput{
		Title:       form.value("title"),
		Artist:      form.value("artist"),
		ReleaseYear: form.value("releaseYear"),
		ImagePath:   form.file("imageFile"),
	})
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, "Album created successfully", album)
}

// GET /getAlbum
func (h *CatalogHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.albums.List(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Albums retrieved successfully", map[string]interface{}{
		"albums": albums,
		"count":  len(albums),
	})
}

// GET /getAlbum/{albumId}
func (h *CatalogHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := h.albums.Get(r.Context(), r.PathValue("albumId"))
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Album retrieved successfully", album)
}

// PATCH /update-album/{albumId}
func (h *CatalogHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	form, err := parseUploadForm(w, r, h.tempDir, h.maxUpload, "imageFile")
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	defer form.cleanup()

	album, err := h.albums.Update(r.Context(), r.PathValue("albumId"), application.UpdateAlbumInput{
		Title:       form.optional("title"),
		Artist:      form.optional("artist"),
		ReleaseYear: form.optional("releaseYear"),
		ImagePath:   form.file("imageFile"),
	})
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Album updated successfully", album)
}

// DELETE /delete-album/{id}
func (h *CatalogHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := h.albums.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Album deleted successfully", nil)
}

// POST /song
func (h *CatalogHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	form, err := parseUploadForm(w, r, h.tempDir, h.maxUpload, "audioFile", "imageFile")
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	defer form.cleanup()

	song, err := h.songs.Create(r.Context(), application.CreateSongInput{
		Title:     form.value("title"),
		Artist:    form.value("artist"),
		Duration:  form.value("duration"),
		AlbumID:   form.value("albumId"),
		AudioPath: form.file("audioFile"),
		ImagePath: form.file("imageFile"),
	})
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, "Song created successfully", song)
}

// GET /getSong
func (h *CatalogHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.List(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Songs retrieved successfully", songs)
}

// GET /featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	h.writeSample(w, r, h.songs.Featured, "Featured songs retrieved successfully")
}

// GET /made-for-you
func (h *CatalogHandler) MadeForYou(w http.ResponseWriter, r *http.Request) {
	h.writeSample(w, r, h.songs.MadeForYou, "Made for you songs retrieved successfully")
}

// GET /trending
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	h.writeSample(w, r, h.songs.Trending, "Trending songs retrieved successfully")
}

// PATCH /update-song/{id}
func (h *CatalogHandler) UpdateSong(w http.ResponseWriter, r *http.Request) {
	form, err := parseUploadForm(w, r, h.tempDir, h.maxUpload, "audioFile", "imageFile")
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	defer form.cleanup()

	song, err := h.songs.Update(r.Context(), r.PathValue("id"), application.UpdateSongInput{
		Title:     form.optional("title"),
		Artist:    form.optional("artist"),
		Duration:  form.optional("duration"),
		AlbumID:   form.optional("albumId"),
		AudioPath: form.file("audioFile"),
		ImagePath: form.file("imageFile"),
	})
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Song updated successfully", song)
}

// DELETE /delete-song/{id}
func (h *CatalogHandler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := h.songs.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Song deleted successfully", nil)
}

func (h *CatalogHandler) writeSample(w http.ResponseWriter, r *http.Request, sample func(ctx context.Context) ([]domain.SongPreview, error), message string) {
	songs, err := sample(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, message, songs)
}

// fail maps a service error to an error envelope. uploadStatus is the code
// used for asset upload failures, which differs between create and update.
func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error, uploadStatus int) {
	switch {
	case errors.Is(err, domain.ErrNoAlbums):
		utils.WriteError(w, http.StatusNotFound, "No albums found")
	case errors.Is(err, domain.ErrAlbumNotFound):
		utils.WriteError(w, http.StatusNotFound, "Album not found")
	case errors.Is(err, domain.ErrSongNotFound):
		utils.WriteError(w, http.StatusNotFound, "Song not found")
	case errors.Is(err, apperr.ErrUpload):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("asset upload failed")
		utils.WriteError(w, uploadStatus, "Error uploading file")
	case apperr.IsClientError(err):
		utils.WriteError(w, apperr.HTTPStatus(err), err.Error())
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("catalog request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
