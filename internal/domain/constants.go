package domain

// Default scheduling values
const (
	// DefaultSlotStepMinutes шаг сетки слотов (кандидаты выравниваются на :00/:30)
	DefaultSlotStepMinutes = 30

	// DefaultMinBookingNoticeMinutes минимальный запас до начала слота при бронировании на сегодня
	DefaultMinBookingNoticeMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 0
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxClientNameLength    = 120
	MaxReasonLength        = 255
	MaxCustomRequestLength = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
