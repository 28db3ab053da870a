package schedule

import (
	"fmt"
	"time"

	"medisched-service/internal/app/models"
	"medisched-service/internal/pkg/constvars"
	"medisched-service/internal/pkg/exceptions"
)

// GenerateSlots expands working hours into the ordered candidate slot times
// for one day: HH:MM strings starting at the working-hours start, stepping by
// slotMinutes, stopping strictly before the end. The end itself is never an
// offered slot. A window shorter than one slot yields an empty, non-error
// result.
func GenerateSlots(workingHours models.WorkingHours, slotMinutes int) ([]string, error) {
	if slotMinutes <= 0 {
		return nil, exceptions.ErrInvalidWorkingHours(fmt.Errorf("slot duration %d must be positive", slotMinutes))
	}
	start, err := parseClock(workingHours.Start)
	if err != nil {
		return nil, exceptions.ErrInvalidWorkingHours(err)
	}
	end, err := parseClock(workingHours.End)
	if err != nil {
		return nil, exceptions.ErrInvalidWorkingHours(err)
	}
	if !start.Before(end) {
		return nil, exceptions.ErrInvalidWorkingHours(
			fmt.Errorf("start %s is not before end %s", workingHours.Start, workingHours.End),
		)
	}

	slots := []string{}
	step := time.Duration(slotMinutes) * time.Minute
	for current := start; current.Before(end); current = current.Add(step) {
		slots = append(slots, current.Format(constvars.TimeOfDayLayout))
	}
	return slots, nil
}

// ResolveAvailability returns the candidates whose time of day is not booked,
// preserving candidate order. It is a pure function; loading the booked times
// is the caller's job.
func ResolveAvailability(candidates []string, bookedTimes []string) []string {
	booked := make(map[string]struct{}, len(bookedTimes))
	for _, bookedTime := range bookedTimes {
		booked[bookedTime] = struct{}{}
	}

	free := []string{}
	for _, candidate := range candidates {
		if _, taken := booked[candidate]; !taken {
			free = append(free, candidate)
		}
	}
	return free
}

// TimeOfDay extracts the minute-granularity HH:MM component of an instant.
// All conflict comparisons in the service are exact string matches on this
// value, so every reader and writer must go through here. UTC is the single
// normalization point; instants that arrive with an offset are converted
// before truncation.
func TimeOfDay(instant time.Time) string {
	return instant.UTC().Format(constvars.TimeOfDayLayout)
}

// DayOf extracts the YYYY-MM-DD calendar day of an instant, consistent with
// TimeOfDay's normalization.
func DayOf(instant time.Time) string {
	return instant.UTC().Format(constvars.CalendarDayLayout)
}

// SlotKey is the minute-truncated identity of a booking, the value the store
// enforces uniqueness on per doctor.
func SlotKey(instant time.Time) string {
	return instant.UTC().Format(constvars.SlotKeyLayout)
}

func parseClock(value string) (time.Time, error) {
	parsed, err := time.Parse(constvars.TimeOfDayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return parsed, nil
}
