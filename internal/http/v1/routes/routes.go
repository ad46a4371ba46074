package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/smilepoint/clinic-api/internal/http/v1/appointments"
	authhandler "github.com/smilepoint/clinic-api/internal/http/v1/auth"
	"github.com/smilepoint/clinic-api/internal/http/v1/profile"
	"github.com/smilepoint/clinic-api/internal/http/v1/services"
	"github.com/smilepoint/clinic-api/internal/platform/auth"
	appointmentsvc "github.com/smilepoint/clinic-api/internal/service/appointment"
	"github.com/smilepoint/clinic-api/internal/service/booking"
	"github.com/smilepoint/clinic-api/internal/service/credential"
	"github.com/smilepoint/clinic-api/internal/service/identity"
	profilesvc "github.com/smilepoint/clinic-api/internal/service/profile"
)

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	adapter *identity.Adapter,
	credentials *credential.Workflow,
	profileService profilesvc.Service,
	appointmentService appointmentsvc.Service,
	bookingWorkflow *booking.Workflow,
) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	services.Register(api)
	authhandler.Register(api, adapter, credentials)
	profile.Register(api, profileService)
	appointments.Register(api, bookingWorkflow, appointmentService, credentials)
}
