package appointments

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
	"github.com/smilepoint/clinic-api/internal/platform/timeutil"
	appointmentsvc "github.com/smilepoint/clinic-api/internal/service/appointment"
	"github.com/smilepoint/clinic-api/internal/service/booking"
	"github.com/smilepoint/clinic-api/internal/service/credential"
)

// Register registers appointment endpoints.
func Register(api huma.API, workflow *booking.Workflow, store appointmentsvc.Service, credentials *credential.Workflow) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-appointment",
		Method:        http.MethodPost,
		Path:          "/appointments",
		Summary:       "Book an appointment",
		Description:   "Validates the booking form and records a Pending appointment for the authenticated patient. Password accounts must have a verified email address.",
		Tags:          []string{"Appointments"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *AppointmentCreateInput) (*AppointmentCreateOutput, error) {
		principal := auth.PrincipalFromContext(ctx)
		if err := credentials.RequireVerified(principal); err != nil {
			return nil, mapBookingError(err)
		}

		created, err := workflow.Submit(ctx, principal, booking.Request{
			Name:      input.Body.Name,
			Email:     input.Body.Email,
			Phone:     input.Body.Phone,
			ServiceID: input.Body.ServiceID,
			Date:      input.Body.Date,
			Time:      input.Body.Time,
			Notes:     input.Body.Notes,
		})
		if err != nil {
			return nil, mapBookingError(err)
		}
		return &AppointmentCreateOutput{
			Location: "/v1/appointments",
			Body:     toHTTPAppointment(created),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-appointments",
		Method:      http.MethodGet,
		Path:        "/appointments",
		Summary:     "List my appointments",
		Description: "Returns the authenticated patient's appointments, newest first.",
		Tags:        []string{"Appointments"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *AppointmentListInput) (*AppointmentListOutput, error) {
		principal := auth.PrincipalFromContext(ctx)

		appts, err := store.ListByOwner(ctx, principal.UID)
		if err != nil {
			return nil, mapBookingError(err)
		}

		out := &AppointmentListOutput{}
		out.Body.Appointments = make([]Appointment, 0, len(appts))
		for _, a := range appts {
			out.Body.Appointments = append(out.Body.Appointments, toHTTPAppointment(a))
		}
		return out, nil
	})
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrUnauthenticated):
		return huma.Error401Unauthorized(booking.ErrUnauthenticated.Error())
	case errors.Is(err, credential.ErrEmailNotVerified):
		return huma.Error403Forbidden(credential.ErrEmailNotVerified.Error())
	case errors.Is(err, booking.ErrMissingField):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, booking.ErrInvalidDate), errors.Is(err, booking.ErrPastDate):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, appointmentsvc.ErrUnavailable):
		// Storage details stay out of the response.
		return huma.Error503ServiceUnavailable(appointmentsvc.ErrUnavailable.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPAppointment(a *appointmentsvc.Appointment) Appointment {
	return Appointment{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		ServiceID:   a.ServiceID,
		ServiceName: a.ServiceName,
		Date:        a.Date,
		Time:        a.Time,
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   timeutil.Time{Time: a.CreatedAt},
	}
}
