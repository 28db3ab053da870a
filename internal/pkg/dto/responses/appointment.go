package responses

import "time"

// DoctorSummary mirrors the doctor fields historically embedded in
// appointment listings.
type DoctorSummary struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

type Appointment struct {
	ID              string         `json:"id"`
	DoctorID        string         `json:"doctorId"`
	Doctor          *DoctorSummary `json:"doctor,omitempty"`
	Date            time.Time      `json:"date"`
	Duration        int            `json:"duration"`
	AppointmentType string         `json:"appointmentType"`
	PatientName     string         `json:"patientName"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
