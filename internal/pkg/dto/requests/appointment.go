package requests

type CreateAppointmentRequest struct {
	DoctorID        string `json:"doctorId" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Duration        int    `json:"duration" validate:"required,gt=0"`
	AppointmentType string `json:"appointmentType" validate:"required"`
	PatientName     string `json:"patientName" validate:"required"`
	Notes           string `json:"notes"`
}

// UpdateAppointmentRequest requires the fields that drive conflict checking;
// the rest only overwrite when present.
type UpdateAppointmentRequest struct {
	DoctorID        string  `json:"doctorId" validate:"required"`
	Date            string  `json:"date" validate:"required"`
	Duration        *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	AppointmentType *string `json:"appointmentType,omitempty"`
	PatientName     *string `json:"patientName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}
