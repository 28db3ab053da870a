package models

import "time"

// Appointment is stored only in its confirmed form: a document exists once the
// booking passed the conflict check and disappears on cancellation.
type Appointment struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	DoctorID string    `json:"doctorId" bson:"doctorId"`
	Date     time.Time `json:"date" bson:"date"`
	// SlotKey is Date truncated to the minute in UTC. The appointments
	// collection carries a unique index on (doctorId, slotKey), which is the
	// authoritative double-booking guard.
	SlotKey         string `json:"-" bson:"slotKey"`
	Duration        int    `json:"duration" bson:"duration"`
	AppointmentType string `json:"appointmentType" bson:"appointmentType"`
	PatientName     string `json:"patientName" bson:"patientName"`
	Notes           string `json:"notes,omitempty" bson:"notes,omitempty"`
	TimeModel       `bson:",inline"`
}
