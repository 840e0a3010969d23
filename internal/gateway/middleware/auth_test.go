package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saransh1220/soundwave/internal/modules/auth/domain"
	"github.com/saransh1220/soundwave/internal/modules/auth/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

type secretValidator struct{}

func (secretValidator) ValidateToken(tokenStr string) (*jwt.SessionClaims, error) {
	return jwt.ValidateToken(tokenStr, testSecret)
}

type roleTable map[string]domain.Role

func (t roleTable) Authorize(_ context.Context, clerkID string, required domain.Role) error {
	if clerkID == "broken" {
		return errors.New("db down")
	}
	role, ok := t[clerkID]
	if !ok {
		return domain.Authorize(nil, required)
	}
	return domain.Authorize(&domain.User{Role: role}, required)
}

func newTestMiddleware() *AuthMiddleWare {
	return NewAuthMiddleware(secretValidator{}, roleTable{"admin_1": domain.RoleAdmin, "user_1": domain.RoleUser})
}

func tokenFor(t *testing.T, subject, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken(testSecret, time.Hour, subject, role)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user_1", "user"))
	rec := httptest.NewRecorder()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		id, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "user_1", id)
		assert.Equal(t, "user", r.Context().Value(ContextKeyRole))
	})

	newTestMiddleware().RequireAuth(next).ServeHTTP(rec, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_QueryToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+tokenFor(t, "user_1", "user"), nil)
	rec := httptest.NewRecorder()

	nextCalled := false
	newTestMiddleware().RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})).ServeHTTP(rec, req)

	assert.True(t, nextCalled)
}

func TestRequireAuth_Rejects(t *testing.T) {
	expired, err := jwt.GenerateToken(testSecret, -time.Minute, "user_1", "user")
	require.NoError(t, err)
	foreign, err := jwt.GenerateToken("other-secret", time.Hour, "user_1", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		body   string
	}{
		{"missing", "", "you must be logged in"},
		{"wrong_prefix", "Basic abc", "you must be logged in"},
		{"missing_token", "Bearer", "you must be logged in"},
		{"garbage", "Bearer not-a-token", "invalid or expired token"},
		{"expired", "Bearer " + expired, "invalid or expired token"},
		{"foreign_secret", "Bearer " + foreign, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			nextCalled := false
			newTestMiddleware().RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})).ServeHTTP(rec, req)

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.Contains(t, rec.Body.String(), `"status":"error"`)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		role     string
		wantCode int
	}{
		{"admin", "admin_1", "admin", http.StatusOK},
		{"plain user", "user_1", "user", http.StatusForbidden},
		{"role claim is not trusted", "user_1", "admin", http.StatusForbidden},
		{"unknown subject", "ghost", "admin", http.StatusForbidden},
		{"lookup failure", "broken", "admin", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/album", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.subject, tt.role))
			rec := httptest.NewRecorder()

			newTestMiddleware().RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "Admin privileges required")
			}
		})
	}
}

func TestRequireAdmin_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/album", nil)
	rec := httptest.NewRecorder()

	newTestMiddleware().RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDFromContext_Empty(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
}
