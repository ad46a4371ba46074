package auth

import "context"

// MockVerifier is a canned Verifier for handler tests. Error, when set, wins
// over User.
type MockVerifier struct {
	User  *Principal
	Error error
}

func (m *MockVerifier) Verify(_ context.Context, _ string) (*Principal, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestPrincipal is the standard authenticated patient used across handler
// tests. It is a verified password account so it passes the sign-in gate.
func TestPrincipal() *Principal {
	return &Principal{
		UID:           "test-user-123",
		Email:         "test@example.com",
		DisplayName:   "Test Patient",
		EmailVerified: true,
		Provider:      "password",
	}
}

var _ Verifier = (*MockVerifier)(nil)
