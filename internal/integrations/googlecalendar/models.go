package googlecalendar

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// eventSource метка, по которой сервис отличает свои события от чужих
// Записывается в extended properties события
const eventSource = "sln-booking-service"
