package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange(t *testing.T) {
	r, err := NewRange("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 540, End: 1020}, r)
	assert.Equal(t, 480, r.Duration())

	_, err = NewRange("17:00", "09:00")
	assert.Error(t, err)

	_, err = NewRange("10:00", "10:00")
	assert.Error(t, err)
}

func TestRange_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		overlaps bool
	}{
		{
			name:     "real intersection",
			a:        Range{Start: 540, End: 600},
			b:        Range{Start: 570, End: 630},
			overlaps: true,
		},
		{
			name:     "touching boundaries do not overlap",
			a:        Range{Start: 540, End: 600},
			b:        Range{Start: 600, End: 660},
			overlaps: false,
		},
		{
			name:     "one contains the other",
			a:        Range{Start: 540, End: 720},
			b:        Range{Start: 600, End: 660},
			overlaps: true,
		},
		{
			name:     "disjoint",
			a:        Range{Start: 540, End: 600},
			b:        Range{Start: 700, End: 760},
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestMergeRanges(t *testing.T) {
	tests := []struct {
		name     string
		input    []Range
		expected []Range
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: []Range{},
		},
		{
			name:     "disjoint stay separate",
			input:    []Range{{Start: 600, End: 660}, {Start: 540, End: 570}},
			expected: []Range{{Start: 540, End: 570}, {Start: 600, End: 660}},
		},
		{
			name:     "overlapping are merged",
			input:    []Range{{Start: 540, End: 620}, {Start: 600, End: 660}},
			expected: []Range{{Start: 540, End: 660}},
		},
		{
			name:     "touching are merged",
			input:    []Range{{Start: 540, End: 600}, {Start: 600, End: 660}},
			expected: []Range{{Start: 540, End: 660}},
		},
		{
			name:     "empty ranges are dropped",
			input:    []Range{{Start: 540, End: 540}, {Start: 600, End: 660}},
			expected: []Range{{Start: 600, End: 660}},
		},
		{
			name:     "nested inside another",
			input:    []Range{{Start: 540, End: 720}, {Start: 580, End: 620}},
			expected: []Range{{Start: 540, End: 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MergeRanges(tt.input)
			if len(tt.expected) == 0 {
				assert.Empty(t, result)
				return
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSubtractRanges(t *testing.T) {
	tests := []struct {
		name     string
		open     []Range
		busy     []Range
		expected []Range
	}{
		{
			name:     "no busy returns open as is",
			open:     []Range{{Start: 540, End: 1020}},
			busy:     nil,
			expected: []Range{{Start: 540, End: 1020}},
		},
		{
			name:     "busy in the middle splits open",
			open:     []Range{{Start: 540, End: 1020}},
			busy:     []Range{{Start: 720, End: 780}},
			expected: []Range{{Start: 540, End: 720}, {Start: 780, End: 1020}},
		},
		{
			name:     "busy covering open removes it entirely",
			open:     []Range{{Start: 600, End: 660}},
			busy:     []Range{{Start: 540, End: 720}},
			expected: []Range{},
		},
		{
			name:     "busy touching the boundary cuts nothing",
			open:     []Range{{Start: 600, End: 660}},
			busy:     []Range{{Start: 540, End: 600}, {Start: 660, End: 720}},
			expected: []Range{{Start: 600, End: 660}},
		},
		{
			name:     "busy overlapping the start trims it",
			open:     []Range{{Start: 540, End: 720}},
			busy:     []Range{{Start: 500, End: 600}},
			expected: []Range{{Start: 600, End: 720}},
		},
		{
			name:     "empty open gives empty result",
			open:     nil,
			busy:     []Range{{Start: 540, End: 600}},
			expected: []Range{},
		},
		{
			name: "multiple open windows with multiple busy",
			open: []Range{{Start: 540, End: 720}, {Start: 840, End: 1020}},
			busy: []Range{{Start: 570, End: 660}, {Start: 900, End: 930}},
			expected: []Range{
				{Start: 540, End: 570},
				{Start: 660, End: 720},
				{Start: 840, End: 900},
				{Start: 930, End: 1020},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SubtractRanges(tt.open, tt.busy)
			if len(tt.expected) == 0 {
				assert.Empty(t, result)
				return
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDayAvailability_FreeIntervals(t *testing.T) {
	day := DayAvailability{
		Open: []OpenHoursEntry{
			{StartTime: "09:00", EndTime: "17:00"},
		},
		Blocked: []BlockedTimeEntry{
			{StartTime: "12:00", EndTime: "13:00"},
		},
	}

	free, err := day.FreeIntervals()
	require.NoError(t, err)
	assert.Equal(t, []Range{{Start: 540, End: 720}, {Start: 780, End: 1020}}, free)
}

func TestBooking_Footprint(t *testing.T) {
	b := Booking{StartTime: "10:30", DurationMinutes: 90}

	r, err := b.Footprint()
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 630, End: 720}, r)
}
