package get_available_times

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

func TestGenerateStartTimes(t *testing.T) {
	tests := []struct {
		name          string
		free          []domain.Range
		duration      int
		step          int
		earliestStart int
		expected      []string
	}{
		{
			name:     "full window on the grid",
			free:     []domain.Range{{Start: 540, End: 660}}, // 09:00-11:00
			duration: 30,
			step:     30,
			expected: []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:     "candidates aligned up to the grid",
			free:     []domain.Range{{Start: 555, End: 720}}, // 09:15-12:00
			duration: 30,
			step:     30,
			expected: []string{"09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:     "service must fit entirely",
			free:     []domain.Range{{Start: 540, End: 630}}, // 09:00-10:30
			duration: 60,
			step:     30,
			expected: []string{"09:00", "09:30"},
		},
		{
			name: "booking in the middle of the day",
			// Open 09:00-12:00, booked 09:30-11:00: the tail of the first
			// gap cannot hold a full hour
			free:     []domain.Range{{Start: 540, End: 570}, {Start: 660, End: 720}},
			duration: 60,
			step:     30,
			expected: []string{"11:00"},
		},
		{
			name:          "same-day cutoff drops early slots",
			free:          []domain.Range{{Start: 540, End: 720}}, // 09:00-12:00
			duration:      30,
			step:          30,
			earliestStart: 625, // 10:25
			expected:      []string{"10:30", "11:00", "11:30"},
		},
		{
			name:     "window too small for the service",
			free:     []domain.Range{{Start: 540, End: 570}},
			duration: 60,
			step:     30,
			expected: []string{},
		},
		{
			name:     "no free ranges",
			free:     nil,
			duration: 30,
			step:     30,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := generateStartTimes(tt.free, tt.duration, tt.step, tt.earliestStart)
			require.NoError(t, err)

			asStrings := make([]string, 0, len(result))
			for _, ts := range result {
				asStrings = append(asStrings, ts.String())
			}
			assert.Equal(t, tt.expected, asStrings)
		})
	}
}

func TestBookingFootprints(t *testing.T) {
	bookings := []*domain.Booking{
		{Status: domain.StatusActive, StartTime: types.TimeString("10:00"), DurationMinutes: 60},
		{Status: domain.StatusCancelled, StartTime: types.TimeString("12:00"), DurationMinutes: 60},
	}

	footprints, err := bookingFootprints(bookings)
	require.NoError(t, err)

	// Отмененные бронирования не занимают время
	assert.Equal(t, []domain.Range{{Start: 600, End: 660}}, footprints)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 540, alignUp(540, 30))
	assert.Equal(t, 570, alignUp(541, 30))
	assert.Equal(t, 570, alignUp(569, 30))
	assert.Equal(t, 0, alignUp(0, 30))
}

func TestEarliestStartFor(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 25, 0, 0, time.UTC)

	sameDay := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 655, earliestStartFor(sameDay, now, 30)) // 10:55

	nextDay := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, earliestStartFor(nextDay, now, 30))
}
