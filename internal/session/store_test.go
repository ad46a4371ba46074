package session

import (
	"testing"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
)

func TestStoreStartsBootstrapping(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()
	if !snap.Bootstrapping {
		t.Fatal("expected bootstrapping on a fresh store")
	}
	if snap.Principal != nil {
		t.Fatal("expected nil principal on a fresh store")
	}
}

func TestSetEndsBootstrapping(t *testing.T) {
	s := NewStore()
	s.Set(auth.TestPrincipal())

	snap := s.Snapshot()
	if snap.Bootstrapping {
		t.Fatal("expected bootstrapping to end after first Set")
	}
	if snap.Principal == nil || snap.Principal.UID != "test-user-123" {
		t.Fatalf("unexpected principal: %+v", snap.Principal)
	}
}

func TestLogoutNotifiesEachSubscriberExactlyOnce(t *testing.T) {
	s := NewStore()
	s.Set(auth.TestPrincipal())

	var first, second []Snapshot
	unsub1 := s.Subscribe(func(snap Snapshot) { first = append(first, snap) })
	defer unsub1()
	unsub2 := s.Subscribe(func(snap Snapshot) { second = append(second, snap) })
	defer unsub2()

	s.Set(nil)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected exactly one notification per subscriber, got %d and %d", len(first), len(second))
	}
	if first[0].Principal != nil {
		t.Fatal("expected nil principal after logout")
	}
	if s.Snapshot().Principal != nil {
		t.Fatal("expected store principal to be nil after logout")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore()

	calls := 0
	unsub := s.Subscribe(func(Snapshot) { calls++ })

	s.Set(auth.TestPrincipal())
	unsub()
	s.Set(nil)

	if calls != 1 {
		t.Fatalf("expected 1 notification before unsubscribe, got %d", calls)
	}
}

func TestSubscribersObserveConsistentSnapshot(t *testing.T) {
	s := NewStore()

	var seen Snapshot
	unsub := s.Subscribe(func(snap Snapshot) { seen = snap })
	defer unsub()

	p := &auth.Principal{UID: "uid-9", Email: "nine@example.com", Provider: "password"}
	s.Set(p)

	if seen.Bootstrapping {
		t.Fatal("notification must carry bootstrapping=false")
	}
	if seen.Principal != p {
		t.Fatalf("expected the exact principal pointer, got %+v", seen.Principal)
	}
}
