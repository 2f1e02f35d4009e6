package domain

import (
	"fmt"
	"sort"

	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// Range represents a half-open time interval [Start, End) within a single
// day, in minutes since midnight. Half-open semantics mean that a range
// whose boundary exactly touches another does not overlap it.
type Range struct {
	Start int
	End   int
}

// NewRange builds a Range from boundary times, validating start < end
func NewRange(start, end types.TimeString) (Range, error) {
	s, err := start.Minutes()
	if err != nil {
		return Range{}, err
	}
	e, err := end.Minutes()
	if err != nil {
		return Range{}, err
	}
	if s >= e {
		return Range{}, fmt.Errorf("invalid range: start %s is not before end %s", start, end)
	}
	return Range{Start: s, End: e}, nil
}

// Duration returns the range length in minutes
func (r Range) Duration() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range contains no time
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Overlaps returns true if the ranges truly intersect.
// Touching boundaries ([9:00,10:00) and [10:00,11:00)) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// StartTime returns the range start as "HH:MM"
func (r Range) StartTime() (types.TimeString, error) {
	return types.FromMinutes(r.Start)
}

// MergeRanges сортирует диапазоны по началу и склеивает пересекающиеся
// и соприкасающиеся. Возвращает упорядоченный список непересекающихся
// диапазонов; пустые диапазоны отбрасываются.
func MergeRanges(ranges []Range) []Range {
	merged := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			merged = append(merged, r)
		}
	}
	if len(merged) < 2 {
		return merged
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].End < merged[j].End
	})

	result := merged[:1]
	for _, r := range merged[1:] {
		last := &result[len(result)-1]
		if r.Start <= last.End {
			// Пересечение или стык - расширяем предыдущий диапазон
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		result = append(result, r)
	}

	return result
}

// SubtractRanges вычитает busy из open (полуинтервальная семантика).
// Оба списка предварительно склеиваются; результат - упорядоченный список
// непересекающихся свободных диапазонов. Busy-диапазон, который только
// касается границы open-диапазона, ничего не отрезает; busy, полностью
// накрывающий open, убирает его целиком. Пустой open дает пустой результат.
func SubtractRanges(open, busy []Range) []Range {
	openMerged := MergeRanges(open)
	busyMerged := MergeRanges(busy)

	free := make([]Range, 0, len(openMerged))

	for _, o := range openMerged {
		cursor := o.Start
		for _, b := range busyMerged {
			if b.End <= cursor {
				continue
			}
			if b.Start >= o.End {
				break
			}
			if b.Start > cursor {
				free = append(free, Range{Start: cursor, End: b.Start})
			}
			if b.End > cursor {
				cursor = b.End
			}
		}
		if cursor < o.End {
			free = append(free, Range{Start: cursor, End: o.End})
		}
	}

	return free
}
