package appointment

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/smilepoint/clinic-api/internal/testutil"
)

func setupFirestoreTest(t *testing.T) (*FirestoreStore, func()) {
	t.Helper()

	testutil.SkipIfFirestoreUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearFirestore(t)

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, testutil.ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}

	store := NewFirestoreStore(client)
	cleanup := func() {
		testutil.ClearFirestore(t)
		_ = client.Close()
	}

	return store, cleanup
}

func TestFirestoreCreateAndList(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, newPendingAppointment("user-123", "2026-10-01"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt stamp")
	}

	if _, err := store.Create(ctx, newPendingAppointment("other-user", "2026-10-02")); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	appts, err := store.ListByOwner(ctx, "user-123")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if appts[0].ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, appts[0].ID)
	}
	if appts[0].Status != StatusPending {
		t.Errorf("expected Pending, got %q", appts[0].Status)
	}
}

func TestFirestoreListOrdersNewestFirst(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	first, err := store.Create(ctx, newPendingAppointment("user-order", "2026-10-01"))
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := store.Create(ctx, newPendingAppointment("user-order", "2026-10-02"))
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	appts, err := store.ListByOwner(ctx, "user-order")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if appts[0].ID != second.ID || appts[1].ID != first.ID {
		t.Errorf("expected newest first, got %s then %s", appts[0].ID, appts[1].ID)
	}
}

func TestFirestoreSubscribe(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	snapshots := make(chan []*Appointment, 8)
	stop, err := store.Subscribe(ctx, "user-watch", func(appts []*Appointment) {
		snapshots <- appts
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer stop()

	// The watch delivers the (empty) initial state first.
	waitForSnapshot(t, snapshots, 0)

	if _, err := store.Create(ctx, newPendingAppointment("user-watch", "2026-10-01")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	waitForSnapshot(t, snapshots, 1)

	if _, err := store.Create(ctx, newPendingAppointment("user-watch", "2026-10-02")); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	waitForSnapshot(t, snapshots, 2)
}

func waitForSnapshot(t *testing.T, snapshots <-chan []*Appointment, want int) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case appts := <-snapshots:
			if len(appts) == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot with %d appointments", want)
		}
	}
}
