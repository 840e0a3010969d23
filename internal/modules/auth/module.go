package auth

import (
	"time"

	"github.com/saransh1220/soundwave/internal/modules/auth/application"
	"github.com/saransh1220/soundwave/internal/modules/auth/infrastructure/google"
	"github.com/saransh1220/soundwave/internal/modules/auth/infrastructure/persistence/mongodb"
	auth_http "github.com/saransh1220/soundwave/internal/modules/auth/interfaces/http"
	"go.mongodb.org/mongo-driver/mongo"
)

// Options configures the Auth module
type Options struct {
	GoogleClientID string
	AdminEmails    []string
	JWTSecret      string
	JWTExpiry      time.Duration
	// Verifier overrides the Google verifier, mainly for tests.
	Verifier application.IdentityVerifier
}

// Module represents the Auth module
type Module struct {
	service    *application.AuthService
	repository *mongodb.MongoUserRepository
	handler    *auth_http.AuthHandler
}

// NewModule creates and initializes the Auth module
func NewModule(db *mongo.Database, opts Options) *Module {
	verifier := opts.Verifier
	if verifier == nil {
		verifier = google.NewVerifier(opts.GoogleClientID)
	}

	repository := mongodb.NewUserRepository(db)
	service := application.NewAuthService(repository, verifier, opts.AdminEmails, opts.JWTSecret, opts.JWTExpiry)

	return &Module{
		service:    service,
		repository: repository,
		handler:    auth_http.NewAuthHandler(service),
	}
}

// Service returns the auth service; the gateway uses it for token checks
// and the admin guard.
func (m *Module) Service() *application.AuthService {
	return m.service
}

func (m *Module) HTTPHandler() *auth_http.AuthHandler {
	return m.handler
}
