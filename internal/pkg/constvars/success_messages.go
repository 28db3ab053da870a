package constvars

const (
	CreateDoctorSuccessMessage      = "Doctor successfully created"
	GetDoctorsSuccessMessage        = "Doctors successfully retrieved"
	GetAvailabilitySuccessMessage   = "Doctor availability successfully retrieved"
	GetAppointmentsSuccessMessage   = "Appointments successfully retrieved"
	GetAppointmentSuccessMessage    = "Appointment successfully retrieved"
	CreateAppointmentSuccessMessage = "Appointment successfully created"
	UpdateAppointmentSuccessMessage = "Appointment successfully updated"
	CancelAppointmentSuccessMessage = "Appointment cancelled successfully"
)
