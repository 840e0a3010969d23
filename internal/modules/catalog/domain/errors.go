package domain

import (
	"fmt"

	"github.com/saransh1220/soundwave/internal/shared/apperr"
)

var (
	ErrAlbumNotFound = fmt.Errorf("album %w", apperr.ErrNotFound)
	ErrSongNotFound  = fmt.Errorf("song %w", apperr.ErrNotFound)
	ErrNoAlbums      = fmt.Errorf("no albums: %w", apperr.ErrNotFound)
	ErrInvalidID     = fmt.Errorf("%w: invalid id", apperr.ErrValidation)
	ErrNothingToSave = fmt.Errorf("%w: no fields to update", apperr.ErrValidation)
)
