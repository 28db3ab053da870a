package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
)

const (
	// SlotDurationMinutes is the fixed booking granularity. It is a service
	// constant, not derived from an appointment's duration.
	SlotDurationMinutes = 30

	// Layouts shared by slot generation and booked-time extraction. Every
	// time-of-day comparison in the service goes through these formats.
	TimeOfDayLayout   = "15:04"
	CalendarDayLayout = "2006-01-02"
	SlotKeyLayout     = "2006-01-02T15:04"
)

const (
	LockDoctorBookingKeyFormat = "lock:doctor-booking:%s"
	DoctorLockExpiration       = 5 * time.Second
	DoctorLockRetryInterval    = 25 * time.Millisecond
)

const (
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
)
