package schedule

import (
	"fmt"
	"testing"
	"time"

	"medisched-service/internal/app/models"
	"medisched-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("Working Hours Scenario", func(t *testing.T) {
		slots, err := GenerateSlots(models.WorkingHours{Start: "09:00", End: "11:00"}, 30)

		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
	})

	t.Run("Slot Count Matches Window", func(t *testing.T) {
		cases := []struct {
			start, end string
			expected   int
		}{
			{"08:00", "08:30", 1},
			{"08:00", "12:00", 8},
			{"00:00", "23:30", 47},
			{"09:15", "10:15", 2},
		}
		for _, c := range cases {
			slots, err := GenerateSlots(models.WorkingHours{Start: c.start, End: c.end}, 30)

			require.NoError(t, err)
			assert.Len(t, slots, c.expected, fmt.Sprintf("window %s-%s", c.start, c.end))
			assert.Equal(t, c.start, slots[0], "first slot must be the window start")
			for i := 1; i < len(slots); i++ {
				assert.Less(t, slots[i-1], slots[i], "slots must be strictly increasing")
			}
		}
	})

	t.Run("End Is Never Offered", func(t *testing.T) {
		slots, err := GenerateSlots(models.WorkingHours{Start: "09:00", End: "10:00"}, 30)

		require.NoError(t, err)
		assert.NotContains(t, slots, "10:00")
		assert.Equal(t, "09:30", slots[len(slots)-1])
	})

	t.Run("Window Shorter Than Slot Is Empty Not Error", func(t *testing.T) {
		slots, err := GenerateSlots(models.WorkingHours{Start: "09:00", End: "09:15"}, 30)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Start Equal To End Is Invalid", func(t *testing.T) {
		_, err := GenerateSlots(models.WorkingHours{Start: "09:00", End: "09:00"}, 30)

		assert.Error(t, err)
	})

	t.Run("Start After End Is Invalid", func(t *testing.T) {
		_, err := GenerateSlots(models.WorkingHours{Start: "17:00", End: "09:00"}, 30)

		assert.Error(t, err)
	})

	t.Run("Malformed Clock Is Invalid", func(t *testing.T) {
		_, err := GenerateSlots(models.WorkingHours{Start: "9am", End: "17:00"}, 30)

		assert.Error(t, err)
	})

	t.Run("Non Positive Slot Duration Is Invalid", func(t *testing.T) {
		_, err := GenerateSlots(models.WorkingHours{Start: "09:00", End: "17:00"}, 0)

		assert.Error(t, err)
	})
}

func TestResolveAvailability(t *testing.T) {
	t.Run("Subtracts Booked Preserving Order", func(t *testing.T) {
		candidates := []string{"09:00", "09:30", "10:00", "10:30"}

		free := ResolveAvailability(candidates, []string{"10:00"})

		assert.Equal(t, []string{"09:00", "09:30", "10:30"}, free)
	})

	t.Run("No Bookings Returns All Candidates", func(t *testing.T) {
		candidates := []string{"09:00", "09:30", "10:00"}

		free := ResolveAvailability(candidates, []string{})

		assert.Equal(t, candidates, free)
	})

	t.Run("Everything Booked Returns Empty", func(t *testing.T) {
		candidates := []string{"09:00", "09:30"}

		free := ResolveAvailability(candidates, []string{"09:30", "09:00"})

		assert.Empty(t, free)
	})

	t.Run("Booked Times Outside Candidates Are Ignored", func(t *testing.T) {
		free := ResolveAvailability([]string{"09:00"}, []string{"22:00"})

		assert.Equal(t, []string{"09:00"}, free)
	})

	t.Run("Empty Candidates Yield Empty", func(t *testing.T) {
		free := ResolveAvailability([]string{}, []string{"09:00"})

		assert.Empty(t, free)
	})
}

func TestTimeOfDayNormalization(t *testing.T) {
	t.Run("Offset Instants Normalize To UTC", func(t *testing.T) {
		offset := time.FixedZone("UTC+7", 7*3600)
		local := time.Date(2024, 6, 1, 16, 0, 0, 0, offset)

		assert.Equal(t, "09:00", TimeOfDay(local))
		assert.Equal(t, "2024-06-01", DayOf(local))
		assert.Equal(t, "2024-06-01T09:00", SlotKey(local))
	})

	t.Run("Seconds Are Truncated", func(t *testing.T) {
		instant := time.Date(2024, 6, 1, 9, 0, 59, 999, time.UTC)

		assert.Equal(t, "09:00", TimeOfDay(instant))
	})

	t.Run("Layouts Stay In Sync With Constants", func(t *testing.T) {
		instant := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

		assert.Equal(t, instant.Format(constvars.TimeOfDayLayout), TimeOfDay(instant))
		assert.Equal(t, instant.Format(constvars.SlotKeyLayout), SlotKey(instant))
	})
}
