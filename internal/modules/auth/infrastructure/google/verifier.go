package google

import (
	"context"
	"fmt"

	"github.com/saransh1220/soundwave/internal/modules/auth/domain"
	"google.golang.org/api/idtoken"
)

// Verifier validates Google ID tokens issued for clientID.
type Verifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates the token and extracts the subject and profile claims.
// Without a client id every token is rejected: idtoken skips the audience
// check for an empty audience.
func (v *Verifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" || v.clientID == "" {
		return nil, domain.ErrInvalidAssertion
	}
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAssertion, err)
	}
	if payload.Subject == "" {
		return nil, domain.ErrInvalidAssertion
	}

	claim := func(key string) string {
		s, _ := payload.Claims[key].(string)
		return s
	}
	return &domain.Identity{
		Subject:   payload.Subject,
		Email:     claim("email"),
		FirstName: claim("given_name"),
		LastName:  claim("family_name"),
		Name:      claim("name"),
		Picture:   claim("picture"),
	}, nil
}
