package domain

import (
	"errors"
	"testing"

	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"github.com/stretchr/testify/assert"
)

func TestRoleFor(t *testing.T) {
	admins := []string{"boss@example.com", " Ops@Example.com "}
	assert.Equal(t, RoleAdmin, RoleFor("boss@example.com", admins))
	assert.Equal(t, RoleAdmin, RoleFor("ops@example.com", admins))
	assert.Equal(t, RoleUser, RoleFor("fan@example.com", admins))
	assert.Equal(t, RoleUser, RoleFor("", []string{""}))
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(&User{Role: RoleAdmin}, RoleAdmin))
	assert.NoError(t, Authorize(&User{Role: RoleUser}, RoleUser))

	err := Authorize(&User{Role: RoleUser}, RoleAdmin)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.True(t, errors.Is(Authorize(nil, RoleUser), apperr.ErrForbidden))
}

func TestIdentity_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Identity{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Identity{FirstName: "Ada"}.FullName())
	assert.Equal(t, "A. L.", Identity{Name: " A. L. "}.FullName())
	assert.Empty(t, Identity{}.FullName())
}
