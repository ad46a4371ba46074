// Package booking validates and submits appointment requests. Validation
// order is fixed: authentication, required fields, date, then catalog
// resolution. The first failure wins so patients see one actionable error
// at a time.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smilepoint/clinic-api/internal/catalog"
	"github.com/smilepoint/clinic-api/internal/platform/auth"
	"github.com/smilepoint/clinic-api/internal/service/appointment"
)

// Workflow errors
var (
	ErrUnauthenticated = errors.New("sign in to book an appointment")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDate     = errors.New("invalid appointment date")
	ErrPastDate        = errors.New("appointment date cannot be in the past")
)

// fallbackServiceName labels bookings whose service ID does not resolve
// against the catalog. The record is still accepted; staff sort it out.
const fallbackServiceName = "General Consultation"

const dateLayout = "2006-01-02"

// Request is the booking form as submitted.
type Request struct {
	Name      string
	Email     string
	Phone     string
	ServiceID int
	Date      string
	Time      string
	Notes     string
}

// Workflow validates requests and writes accepted bookings.
type Workflow struct {
	appointments appointment.Service
	now          func() time.Time
}

// NewWorkflow creates a workflow backed by the given appointment store.
func NewWorkflow(appointments appointment.Service) *Workflow {
	return &Workflow{appointments: appointments, now: time.Now}
}

// Submit validates the request and persists a Pending appointment owned by
// the principal. A nil principal fails before any field is inspected.
func (w *Workflow) Submit(ctx context.Context, principal *auth.Principal, req Request) (*appointment.Appointment, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if f.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	if err := w.checkDate(req.Date); err != nil {
		return nil, err
	}

	serviceName := fallbackServiceName
	if svc, ok := catalog.ByID(req.ServiceID); ok {
		serviceName = svc.Title
	}

	created, err := w.appointments.Create(ctx, &appointment.Appointment{
		OwnerID:     principal.UID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceID:   req.ServiceID,
		ServiceName: serviceName,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		Status:      appointment.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// checkDate rejects dates before the current day. Both sides are truncated
// to midnight so a booking for today always passes, regardless of the time
// of day it is made.
func (w *Workflow) checkDate(value string) error {
	day, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrPastDate
	}
	return nil
}
