package appointment

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/zap"

	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
)

const appointmentsCollection = "appointments"

// firestoreAppointment maps to the Firestore document structure.
type firestoreAppointment struct {
	OwnerID     string    `firestore:"user_id"`
	Name        string    `firestore:"name"`
	Email       string    `firestore:"email"`
	Phone       string    `firestore:"phone"`
	ServiceID   int       `firestore:"service_id"`
	ServiceName string    `firestore:"service_name"`
	Date        string    `firestore:"date"`
	Time        string    `firestore:"time"`
	Notes       string    `firestore:"notes"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func (fa *firestoreAppointment) toAppointment(id string) *Appointment {
	return &Appointment{
		ID:          id,
		OwnerID:     fa.OwnerID,
		Name:        fa.Name,
		Email:       fa.Email,
		Phone:       fa.Phone,
		ServiceID:   fa.ServiceID,
		ServiceName: fa.ServiceName,
		Date:        fa.Date,
		Time:        fa.Time,
		Notes:       fa.Notes,
		Status:      Status(fa.Status),
		CreatedAt:   fa.CreatedAt,
	}
}

// FirestoreStore implements Service on the appointments collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create persists a new appointment and returns it with the generated ID
// and creation timestamp filled in.
func (s *FirestoreStore) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	fa := firestoreAppointment{
		OwnerID:     appt.OwnerID,
		Name:        appt.Name,
		Email:       appt.Email,
		Phone:       appt.Phone,
		ServiceID:   appt.ServiceID,
		ServiceName: appt.ServiceName,
		Date:        appt.Date,
		Time:        appt.Time,
		Notes:       appt.Notes,
		Status:      string(appt.Status),
		CreatedAt:   time.Now().UTC(),
	}

	docRef := s.client.Collection(appointmentsCollection).NewDoc()
	if _, err := docRef.Set(ctx, fa); err != nil {
		applog.LogAuditEvent(ctx, "create", appt.OwnerID, "appointment", docRef.ID, applog.AuditFailure, nil)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	applog.LogAuditEvent(ctx, "create", appt.OwnerID, "appointment", docRef.ID, applog.AuditSuccess, nil)

	return fa.toAppointment(docRef.ID), nil
}

// ListByOwner returns the owner's appointments, newest first.
func (s *FirestoreStore) ListByOwner(ctx context.Context, ownerID string) ([]*Appointment, error) {
	docs, err := s.ownerQuery(ownerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	appts := make([]*Appointment, 0, len(docs))
	for _, doc := range docs {
		var fa firestoreAppointment
		if err := doc.DataTo(&fa); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		appts = append(appts, fa.toAppointment(doc.Ref.ID))
	}
	return appts, nil
}

// Subscribe watches the owner's appointments and delivers the full list on
// every change. Delivery runs on a dedicated goroutine; fn must not block
// for long.
func (s *FirestoreStore) Subscribe(ctx context.Context, ownerID string, fn func([]*Appointment)) (func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	iter := s.ownerQuery(ownerID).Snapshots(watchCtx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					applog.LogWarn(watchCtx, "appointment watch ended",
						zap.String("owner_id", ownerID),
						zap.Error(err),
					)
				}
				return
			}

			appts := make([]*Appointment, 0, snap.Size)
			docs, err := snap.Documents.GetAll()
			if err != nil {
				applog.LogWarn(watchCtx, "appointment snapshot read failed",
					zap.String("owner_id", ownerID),
					zap.Error(err),
				)
				continue
			}
			for _, doc := range docs {
				var fa firestoreAppointment
				if err := doc.DataTo(&fa); err != nil {
					continue
				}
				appts = append(appts, fa.toAppointment(doc.Ref.ID))
			}
			fn(appts)
		}
	}()

	return cancel, nil
}

func (s *FirestoreStore) ownerQuery(ownerID string) firestore.Query {
	return s.client.Collection(appointmentsCollection).
		Where("user_id", "==", ownerID).
		OrderBy("created_at", firestore.Desc)
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
