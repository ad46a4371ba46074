package appointment

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	// ErrUnavailable wraps storage failures so handlers never leak raw
	// datastore messages to patients.
	ErrUnavailable = errors.New("appointments unavailable")
)

// Status tracks an appointment through its lifecycle. New bookings always
// start Pending; staff move them forward out of band.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Appointment is a booking record. Date and Time stay as the strings the
// patient picked ("2006-01-02" and a display slot like "10:30 AM"); only
// Date participates in validation.
type Appointment struct {
	ID      string
	OwnerID string

	// Contact details as entered on the booking form; they may differ
	// from the profile.
	Name  string
	Email string
	Phone string

	ServiceID   int
	ServiceName string

	Date  string
	Time  string
	Notes string

	Status    Status
	CreatedAt time.Time
}

// Service defines appointment persistence.
//
// Subscribe delivers the owner's full appointment list on every change,
// newest first. Consumers replace their view wholesale on each delivery
// rather than patching it, so a missed intermediate state is harmless.
type Service interface {
	Create(ctx context.Context, appt *Appointment) (*Appointment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Appointment, error)
	// Subscribe streams list snapshots for the owner until stop is called
	// or ctx is cancelled.
	Subscribe(ctx context.Context, ownerID string, fn func([]*Appointment)) (stop func(), err error)
}
