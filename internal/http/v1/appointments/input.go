package appointments

// AppointmentCreateInput for POST /appointments
type AppointmentCreateInput struct {
	Body struct {
		Name      string `json:"name"              minLength:"1" maxLength:"100" required:"true" doc:"Patient name"          example:"Jane Doe"`
		Email     string `json:"email"             format:"email"                required:"true" doc:"Contact email"         example:"jane@example.com"`
		Phone     string `json:"phone"             minLength:"1" maxLength:"20"  required:"true" doc:"Contact phone"         example:"+358401234567"`
		ServiceID int    `json:"serviceId"                                                       doc:"Requested service ID" example:"1"`
		Date      string `json:"date"              minLength:"1" maxLength:"10"  required:"true" doc:"Date (YYYY-MM-DD)"     example:"2026-10-01"`
		Time      string `json:"time"              minLength:"1" maxLength:"20"  required:"true" doc:"Time slot"             example:"10:30 AM"`
		Notes     string `json:"notes,omitempty"   maxLength:"500"                               doc:"Free-form notes"       example:"first visit"`
	}
}

// AppointmentListInput for GET /appointments (no body needed)
type AppointmentListInput struct{}
