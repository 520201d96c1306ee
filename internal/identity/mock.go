package identity

import "context"

// MockProvider resolves assertions from a fixed table. Used in tests.
type MockProvider struct {
	Identities map[string]*Identity
}

func (m *MockProvider) Resolve(_ context.Context, assertion string) (*Identity, error) {
	if id, ok := m.Identities[assertion]; ok {
		return id, nil
	}
	return nil, ErrUnauthorizedOrigin
}
