package domain

import (
	"errors"
	"fmt"

	"github.com/saransh1220/soundwave/internal/shared/apperr"
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidAssertion = fmt.Errorf("%w: invalid identity token", apperr.ErrUnauthorized)
	ErrInvalidToken     = fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthorized)
	ErrAdminRequired    = fmt.Errorf("%w: admin privileges required", apperr.ErrForbidden)
)
