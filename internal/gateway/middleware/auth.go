package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/auth/domain"
	"github.com/saransh1220/soundwave/internal/modules/auth/infrastructure/jwt"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
	"github.com/saransh1220/soundwave/internal/shared/utils"
)

type contextKey string

const (
	ContextKeyUserId contextKey = "user_id"
	ContextKeyRole   contextKey = "role"
)

// TokenValidator turns a session token into its claims.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.SessionClaims, error)
}

// RoleAuthorizer checks the stored role of a subject.
type RoleAuthorizer interface {
	Authorize(ctx context.Context, clerkID string, required domain.Role) error
}

type AuthMiddleWare struct {
	tokens     TokenValidator
	authorizer RoleAuthorizer
}

func NewAuthMiddleware(tokens TokenValidator, authorizer RoleAuthorizer) *AuthMiddleWare {
	return &AuthMiddleWare{tokens: tokens, authorizer: authorizer}
}

// RequireAuth accepts a session token from the Authorization header or, for
// websocket upgrades, the token query parameter. The subject and role of a
// valid token are put into the request context.
func (m *AuthMiddleWare) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized - you must be logged in")
			return
		}

		claims, err := m.tokens.ValidateToken(tokenStr)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized - invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserId, claims.Subject)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin authenticates the request and then checks the stored user's
// role. The role claim in the token is not trusted for this.
func (m *AuthMiddleWare) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clerkID, _ := UserIDFromContext(r.Context())

		err := m.authorizer.Authorize(r.Context(), clerkID, domain.RoleAdmin)
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, apperr.ErrForbidden):
			utils.WriteError(w, http.StatusForbidden, "Access denied. Admin privileges required.")
		default:
			log.Error().Err(err).Str("clerk_id", clerkID).Msg("admin check failed")
			utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
	}))
}

// UserIDFromContext returns the authenticated subject set by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserId).(string)
	return id, ok && id != ""
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
	}
	return r.URL.Query().Get("token")
}
