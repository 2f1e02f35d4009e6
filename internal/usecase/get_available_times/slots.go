package get_available_times

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// generateStartTimes генерирует доступные времена начала внутри свободных диапазонов
// Кандидаты выравниваются на сетку stepMinutes (:00/:30 при шаге 30) и
// принимаются, только если вся длительность услуги помещается в свободный
// диапазон. earliestStart отсекает слишком ранние слоты при бронировании
// на сегодня; для будущих дат он равен нулю
func generateStartTimes(free []domain.Range, durationMinutes, stepMinutes, earliestStart int) ([]types.TimeString, error) {
	result := make([]types.TimeString, 0)

	for _, r := range free {
		candidate := alignUp(r.Start, stepMinutes)

		for candidate+durationMinutes <= r.End {
			if candidate >= earliestStart {
				ts, err := types.FromMinutes(candidate)
				if err != nil {
					return nil, err
				}
				result = append(result, ts)
			}
			candidate += stepMinutes
		}
	}

	return result, nil
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
// Для сегодняшней даты - текущее время плюс минимальный запас,
// для будущих дат ограничения нет
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
