package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
)

// MockIdentityService is an in-memory Service for unit tests. It keeps
// accounts, issued tokens and phone challenges in maps and returns the same
// sentinel errors the real client maps provider codes to.
type MockIdentityService struct {
	mu         sync.Mutex
	accounts   map[string]*mockAccount // keyed by lowercase email or phone number
	tokens     map[string]string       // idToken -> account key
	challenges map[string]string       // sessionInfo -> phone number
	seq        int

	// FailWith, when set, makes every call fail with that error.
	FailWith error
}

type mockAccount struct {
	UID           string
	Email         string
	Password      string
	PhoneNumber   string
	DisplayName   string
	EmailVerified bool
	Provider      string
}

// SMSCode is the one code the mock accepts for every phone challenge.
const SMSCode = "123456"

// NewMockIdentityService creates an empty mock provider.
func NewMockIdentityService() *MockIdentityService {
	return &MockIdentityService{
		accounts:   make(map[string]*mockAccount),
		tokens:     make(map[string]string),
		challenges: make(map[string]string),
	}
}

// SeedAccount registers a ready-made password account. It returns the UID.
func (m *MockIdentityService) SeedAccount(email, password string, verified bool) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := &mockAccount{
		UID:           m.nextUID(),
		Email:         strings.ToLower(email),
		Password:      password,
		EmailVerified: verified,
		Provider:      "password",
	}
	m.accounts[acc.Email] = acc
	return acc.UID
}

// MarkVerified flips the email-verified flag on an existing account.
func (m *MockIdentityService) MarkVerified(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[strings.ToLower(email)]; ok {
		acc.EmailVerified = true
	}
}

func (m *MockIdentityService) nextUID() string {
	m.seq++
	return fmt.Sprintf("mock-uid-%d", m.seq)
}

func (m *MockIdentityService) issueToken(key string) string {
	m.seq++
	token := fmt.Sprintf("mock-token-%d", m.seq)
	m.tokens[token] = key
	return token
}

func (m *MockIdentityService) session(acc *mockAccount, key string, isNew bool) *Session {
	return &Session{
		UID:           acc.UID,
		Email:         acc.Email,
		DisplayName:   acc.DisplayName,
		PhoneNumber:   acc.PhoneNumber,
		EmailVerified: acc.EmailVerified,
		Provider:      acc.Provider,
		IDToken:       m.issueToken(key),
		RefreshToken:  "mock-refresh",
		IsNewUser:     isNew,
	}
}

func (m *MockIdentityService) SignUp(ctx context.Context, email, password string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	key := strings.ToLower(email)
	if !strings.Contains(key, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}
	if _, exists := m.accounts[key]; exists {
		return nil, ErrEmailInUse
	}

	acc := &mockAccount{
		UID:      m.nextUID(),
		Email:    key,
		Password: password,
		Provider: "password",
	}
	m.accounts[key] = acc
	return m.session(acc, key, true), nil
}

func (m *MockIdentityService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	key := strings.ToLower(email)
	acc, exists := m.accounts[key]
	if !exists || acc.Password != password {
		return nil, ErrInvalidCredential
	}
	return m.session(acc, key, false), nil
}

func (m *MockIdentityService) FederatedSignIn(ctx context.Context, provider Provider, providerToken string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if !provider.Valid() || providerToken == "" {
		return nil, ErrProviderFailure
	}

	// The provider token doubles as the federated identity in tests.
	key := string(provider) + ":" + providerToken
	acc, exists := m.accounts[key]
	isNew := !exists
	if isNew {
		acc = &mockAccount{
			UID:           m.nextUID(),
			Email:         providerToken + "@federated.example",
			DisplayName:   "Federated Patient",
			EmailVerified: true,
			Provider:      string(provider),
		}
		m.accounts[key] = acc
	}
	return m.session(acc, key, isNew), nil
}

func (m *MockIdentityService) StartPhoneVerification(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return "", m.FailWith
	}
	if !strings.HasPrefix(phoneNumber, "+") {
		return "", ErrInvalidPhoneNumber
	}
	if recaptchaToken == "" {
		return "", ErrChallengeSetup
	}

	m.seq++
	sessionInfo := fmt.Sprintf("mock-challenge-%d", m.seq)
	m.challenges[sessionInfo] = phoneNumber
	return sessionInfo, nil
}

func (m *MockIdentityService) ConfirmPhoneCode(ctx context.Context, sessionInfo, code string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	phone, exists := m.challenges[sessionInfo]
	if !exists || code != SMSCode {
		return nil, ErrInvalidCode
	}
	delete(m.challenges, sessionInfo)

	acc, found := m.accounts[phone]
	isNew := !found
	if isNew {
		acc = &mockAccount{
			UID:         m.nextUID(),
			PhoneNumber: phone,
			Provider:    "phone",
		}
		m.accounts[phone] = acc
	}
	return m.session(acc, phone, isNew), nil
}

func (m *MockIdentityService) SendPasswordReset(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, exists := m.accounts[strings.ToLower(email)]; !exists {
		return ErrNoSuchAccount
	}
	return nil
}

func (m *MockIdentityService) SendEmailVerification(ctx context.Context, idToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, exists := m.tokens[idToken]; !exists {
		return ErrAuthFailed
	}
	return nil
}

func (m *MockIdentityService) UpdatePassword(ctx context.Context, idToken, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	key, exists := m.tokens[idToken]
	if !exists {
		return ErrAuthFailed
	}
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}
	m.accounts[key].Password = newPassword
	return nil
}

func (m *MockIdentityService) Lookup(ctx context.Context, idToken string) (*auth.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	key, exists := m.tokens[idToken]
	if !exists {
		return nil, ErrAuthFailed
	}
	acc := m.accounts[key]
	return &auth.Principal{
		UID:           acc.UID,
		Email:         acc.Email,
		DisplayName:   acc.DisplayName,
		PhoneNumber:   acc.PhoneNumber,
		EmailVerified: acc.EmailVerified,
		Provider:      acc.Provider,
	}, nil
}

// Compile-time interface check
var _ Service = (*MockIdentityService)(nil)
