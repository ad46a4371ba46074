package appointments

// AppointmentCreateOutput for POST /appointments (201 Created)
type AppointmentCreateOutput struct {
	Location string `header:"Location" doc:"URL of the appointment list"`
	Body     Appointment
}

// AppointmentListOutput for GET /appointments
type AppointmentListOutput struct {
	Body struct {
		Appointments []Appointment `json:"appointments" doc:"Appointments, newest first"`
	}
}
