package get_available_dates

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// hasAvailableStart проверяет, что хотя бы одно время начала помещается
// в свободные диапазоны. Сетка и отсечка те же, что при генерации слотов,
// но перебор обрывается на первом найденном кандидате
func hasAvailableStart(free []domain.Range, durationMinutes, stepMinutes, earliestStart int) bool {
	for _, r := range free {
		candidate := alignUp(r.Start, stepMinutes)

		if candidate < earliestStart {
			candidate = alignUp(earliestStart, stepMinutes)
		}

		if candidate+durationMinutes <= r.End {
			return true
		}
	}

	return false
}

// bookingFootprints собирает занятые диапазоны активных бронирований
func bookingFootprints(bookings []*domain.Booking) ([]domain.Range, error) {
	footprints := make([]domain.Range, 0, len(bookings))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		r, err := b.Footprint()
		if err != nil {
			return nil, err
		}
		footprints = append(footprints, r)
	}

	return footprints, nil
}

// alignUp округляет минуты вверх до ближайшей границы сетки
func alignUp(minutes, step int) int {
	remainder := minutes % step
	if remainder == 0 {
		return minutes
	}
	return minutes + step - remainder
}

// earliestStartFor вычисляет минимально допустимое время начала слота
func earliestStartFor(requestDate, now time.Time, minNoticeMinutes int) int {
	if !isSameDay(requestDate, now) {
		return 0
	}
	return now.Hour()*60 + now.Minute() + minNoticeMinutes
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
