package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MockAppointmentService implements Service in memory for unit tests.
// Every write re-delivers the owner's full list to active subscribers,
// matching the snapshot-replace contract.
type MockAppointmentService struct {
	mu          sync.Mutex
	appts       []*Appointment
	subscribers map[int]mockSubscriber
	nextID      int
	nextSubID   int

	// FailWith, when set, makes every call fail with that error.
	FailWith error
}

type mockSubscriber struct {
	ownerID string
	fn      func([]*Appointment)
}

// NewMockAppointmentService creates an empty mock store.
func NewMockAppointmentService() *MockAppointmentService {
	return &MockAppointmentService{
		subscribers: make(map[int]mockSubscriber),
	}
}

func (m *MockAppointmentService) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	m.mu.Lock()

	if m.FailWith != nil {
		m.mu.Unlock()
		return nil, m.FailWith
	}

	m.nextID++
	cp := *appt
	cp.ID = fmt.Sprintf("appt-%d", m.nextID)
	cp.CreatedAt = time.Now().UTC()
	m.appts = append(m.appts, &cp)

	type delivery struct {
		fn    func([]*Appointment)
		appts []*Appointment
	}
	var deliveries []delivery
	for _, sub := range m.subscribers {
		if sub.ownerID == cp.OwnerID {
			deliveries = append(deliveries, delivery{sub.fn, m.listLocked(cp.OwnerID)})
		}
	}
	m.mu.Unlock()

	for _, d := range deliveries {
		d.fn(d.appts)
	}

	out := cp
	return &out, nil
}

func (m *MockAppointmentService) ListByOwner(ctx context.Context, ownerID string) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.listLocked(ownerID), nil
}

func (m *MockAppointmentService) Subscribe(ctx context.Context, ownerID string, fn func([]*Appointment)) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = mockSubscriber{ownerID: ownerID, fn: fn}

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}, nil
}

// listLocked returns copies of the owner's appointments, newest first.
// Callers must hold m.mu.
func (m *MockAppointmentService) listLocked(ownerID string) []*Appointment {
	out := make([]*Appointment, 0)
	for _, a := range m.appts {
		if a.OwnerID == ownerID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Compile-time interface check
var _ Service = (*MockAppointmentService)(nil)
