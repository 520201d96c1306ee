package identity

import (
	"context"
	"errors"
)

// ErrUnauthorizedOrigin is returned when the federated provider refuses the
// sign-in attempt (e.g. the assertion was minted for another audience).
// Callers surface it distinctly so the user can fall back to the demo path.
var ErrUnauthorizedOrigin = errors.New("sign-in origin not authorized")

// Identity is a stable external identity resolved from a federated sign-in.
type Identity struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// Provider resolves a federated sign-in assertion into a stable identity.
type Provider interface {
	Resolve(ctx context.Context, assertion string) (*Identity, error)
}
