package profile

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MockProfileService implements Service for unit tests.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMockProfileService creates a new mock service.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[string]*Profile),
	}
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileService) Upsert(ctx context.Context, userID string, params UpsertParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	p, exists := m.profiles[userID]
	if !exists {
		p = &Profile{ID: userID, Role: DefaultRole, CreatedAt: now}
		m.profiles[userID] = p
	}

	if params.DisplayName != nil {
		p.DisplayName = *params.DisplayName
	}
	if params.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*params.Email))
	}
	if params.Phone != nil {
		p.Phone = strings.TrimSpace(*params.Phone)
	}
	if params.Age != nil {
		p.Age = *params.Age
	}
	if params.DateOfBirth != nil {
		p.DateOfBirth = *params.DateOfBirth
	}
	if params.Address != nil {
		p.Address = *params.Address
	}
	if params.Gender != nil {
		p.Gender = *params.Gender
	}
	if params.PhotoURL != nil {
		p.PhotoURL = *params.PhotoURL
	}
	if params.Role != nil {
		p.Role = *params.Role
	}
	if params.AuthProvider != nil {
		p.AuthProvider = *params.AuthProvider
	}
	p.UpdatedAt = now

	cp := *p
	return &cp, nil
}

func (m *MockProfileService) TouchLastLogin(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	p, exists := m.profiles[userID]
	if !exists {
		p = &Profile{ID: userID, Role: DefaultRole, CreatedAt: now}
		m.profiles[userID] = p
	}
	p.LastLogin = now
	p.UpdatedAt = now
	return nil
}

// Clear removes all profiles (useful for test cleanup).
func (m *MockProfileService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
