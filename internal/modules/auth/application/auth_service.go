package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/auth/domain"
	"github.com/saransh1220/soundwave/internal/modules/auth/infrastructure/jwt"
)

// IdentityVerifier checks an identity assertion issued by the provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// CallbackRequest is the body of POST /callback. Profile fields are used
// only when the assertion does not carry them.
type CallbackRequest struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
}

type CallbackResult struct {
	User    *domain.User
	Token   string
	Created bool
}

// AuthService provisions users from identity assertions and issues
// session tokens.
type AuthService struct {
	repo        domain.UserRepository
	verifier    IdentityVerifier
	adminEmails []string
	jwtSecret   string
	jwtExpiry   time.Duration
}

func NewAuthService(repo domain.UserRepository, verifier IdentityVerifier, adminEmails []string, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		repo:        repo,
		verifier:    verifier,
		adminEmails: adminEmails,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
	}
}

// Callback makes sure a local user exists for the asserted subject. Calling
// it again for the same subject returns the stored user untouched.
func (s *AuthService) Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, domain.ErrInvalidAssertion
	}

	identity, err := s.verifier.Verify(ctx, req.Token)
	if err != nil {
		log.Warn().Err(err).Msg("identity assertion rejected")
		return nil, domain.ErrInvalidAssertion
	}
	if identity.Subject == "" {
		return nil, domain.ErrInvalidAssertion
	}

	user, err := s.repo.FindByClerkID(ctx, identity.Subject)
	created := false
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user, err = s.provision(ctx, identity, req)
		if err != nil {
			return nil, err
		}
		created = true
	case err != nil:
		return nil, err
	}

	token, err := jwt.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ClerkID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &CallbackResult{User: user, Token: token, Created: created}, nil
}

func (s *AuthService) provision(ctx context.Context, identity *domain.Identity, req CallbackRequest) (*domain.User, error) {
	name := identity.FullName()
	if name == "" {
		name = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}
	image := identity.Picture
	if image == "" {
		image = req.ImageURL
	}

	now := time.Now().UTC()
	user := &domain.User{
		ClerkID:   identity.Subject,
		FullName:  name,
		ImageURL:  image,
		Role:      domain.RoleFor(identity.Email, s.adminEmails),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		// lost a race with a concurrent callback for the same subject
		existing, findErr := s.repo.FindByClerkID(ctx, identity.Subject)
		if findErr != nil {
			return nil, findErr
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("clerk_id", user.ClerkID).Str("role", string(user.Role)).Msg("user provisioned")
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, clerkID string) (*domain.User, error) {
	return s.repo.FindByClerkID(ctx, clerkID)
}

// ListUsers returns every user except the caller.
func (s *AuthService) ListUsers(ctx context.Context, clerkID string) ([]domain.User, error) {
	return s.repo.ListExcept(ctx, clerkID)
}

// ValidateToken validates a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.SessionClaims, error) {
	claims, err := jwt.ValidateToken(tokenStr, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return claims, nil
}

// Authorize resolves the stored user for clerkID and applies the role
// guard. An unknown subject is treated as lacking the role.
func (s *AuthService) Authorize(ctx context.Context, clerkID string, required domain.Role) error {
	user, err := s.repo.FindByClerkID(ctx, clerkID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Authorize(nil, required)
	}
	if err != nil {
		return err
	}
	return domain.Authorize(user, required)
}
