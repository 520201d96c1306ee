package email

// Provider sends notification emails. All lifecycle notifications are
// best-effort: senders log failures and move on.
type Provider interface {
	Send(email *Email) error
	Validate() error
	Close() error
}

// MockProvider swallows messages; used in tests and keyless deployments.
type MockProvider struct {
	Sent []*Email
}

func (m *MockProvider) Send(email *Email) error {
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *MockProvider) Validate() error { return nil }
func (m *MockProvider) Close() error    { return nil }
