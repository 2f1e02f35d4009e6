package domain

import (
	"time"

	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// OpenHoursEntry represents an admin-declared working window for one
// calendar day. A day may carry several entries; their union is the open
// time of the day.
type OpenHoursEntry struct {
	ID        int64
	Day       time.Time // календарная дата без времени
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the entry as a minute range
func (e *OpenHoursEntry) Range() (Range, error) {
	return NewRange(e.StartTime, e.EndTime)
}

// BlockedTimeEntry represents a sub-interval of a day during which no
// booking may be placed, even if the day is nominally open
type BlockedTimeEntry struct {
	ID        int64
	Day       time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the entry as a minute range
func (e *BlockedTimeEntry) Range() (Range, error) {
	return NewRange(e.StartTime, e.EndTime)
}

// DayAvailability derived free time of a single day: the union of open
// hours minus blocked ranges. Recomputed on every query, never persisted.
type DayAvailability struct {
	Day     time.Time
	Open    []OpenHoursEntry
	Blocked []BlockedTimeEntry
}

// FreeIntervals computes the disjoint, ordered free ranges of the day
func (d *DayAvailability) FreeIntervals() ([]Range, error) {
	open := make([]Range, 0, len(d.Open))
	for i := range d.Open {
		r, err := d.Open[i].Range()
		if err != nil {
			return nil, err
		}
		open = append(open, r)
	}

	blocked := make([]Range, 0, len(d.Blocked))
	for i := range d.Blocked {
		r, err := d.Blocked[i].Range()
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, r)
	}

	return SubtractRanges(open, blocked), nil
}
