// Package identity treats the external identity provider as a
// capability behind an interface, substitutable in tests with a fake
// that returns a fixed identity.
package identity

import "context"

// Identity is the verified identity recovered from a provider token.
// Subject is the provider's stable user identifier.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier validates a provider ID token and recovers the identity it
// asserts. The rest of the application never inspects credentials
// directly.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
