package schedule

import (
	"time"

	"medisched-service/internal/app/models"
)

// Conflict reports a rejected booking attempt together with every time of day
// already held for the doctor's date.
type Conflict struct {
	RequestedTime string
	BookedTimes   []string
}

// CheckConflict decides whether requested collides with any of the doctor's
// existing appointments. The appointments must already be filtered to the
// same doctor and calendar day. excludeID skips one appointment, used on
// updates so a booking never conflicts with itself.
//
// Matching is exact at minute granularity: two appointments one minute apart
// do not conflict, and duration never blocks adjacent slots. Under concurrent
// requests this check is a pre-filter only; the store's uniqueness constraint
// is the final word.
func CheckConflict(requested time.Time, existing []models.Appointment, excludeID string) *Conflict {
	bookedTimes := BookedTimes(existing, excludeID)
	requestedTime := TimeOfDay(requested)
	for _, bookedTime := range bookedTimes {
		if bookedTime == requestedTime {
			return &Conflict{
				RequestedTime: requestedTime,
				BookedTimes:   bookedTimes,
			}
		}
	}
	return nil
}

// BookedTimes extracts the times of day held by the given appointments, in
// the order given, skipping excludeID when set.
func BookedTimes(appointments []models.Appointment, excludeID string) []string {
	bookedTimes := []string{}
	for _, appointment := range appointments {
		if excludeID != "" && appointment.ID == excludeID {
			continue
		}
		bookedTimes = append(bookedTimes, TimeOfDay(appointment.Date))
	}
	return bookedTimes
}
