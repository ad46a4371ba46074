package appointments

import (
	"github.com/smilepoint/clinic-api/internal/platform/timeutil"
)

// Appointment represents a booking response.
type Appointment struct {
	ID          string        `json:"id"          doc:"Unique identifier"        example:"8f14e45f"`
	Name        string        `json:"name"        doc:"Patient name"             example:"Jane Doe"`
	Email       string        `json:"email"       doc:"Contact email"            example:"jane@example.com"`
	Phone       string        `json:"phone"       doc:"Contact phone"            example:"+358401234567"`
	ServiceID   int           `json:"serviceId"   doc:"Requested service ID"     example:"1"`
	ServiceName string        `json:"serviceName" doc:"Resolved service name"    example:"General Dental Care"`
	Date        string        `json:"date"        doc:"Appointment date"         example:"2026-10-01"`
	Time        string        `json:"time"        doc:"Appointment time slot"    example:"10:30 AM"`
	Notes       string        `json:"notes"       doc:"Free-form notes"          example:"first visit"`
	Status      string        `json:"status"      doc:"Booking status"           example:"Pending"`
	CreatedAt   timeutil.Time `json:"createdAt"   doc:"Submission timestamp"     example:"2026-09-15T10:30:00.000Z"`
}
