package identity

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google-issued ID tokens against the
// application's OAuth client ID.
type GoogleVerifier struct {
	audience string
}

// NewGoogleVerifier creates a GoogleVerifier for the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID}
}

// VerifyToken validates the token's signature, expiry, and audience,
// and extracts the profile claims Google attaches to ID tokens.
func (v *GoogleVerifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("google id token validation failed: %w", err)
	}

	id := &Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		id.Picture = picture
	}

	return id, nil
}
