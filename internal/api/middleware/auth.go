package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
)

// adminTokenHeader заголовок с токеном администратора
const adminTokenHeader = "X-Admin-Token"

const msgForbidden = "доступ запрещен"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth проверяет токен администратора в заголовке X-Admin-Token
// Сравнение константное по времени, чтобы не подсказывать токен таймингом
func AdminAuth(adminToken string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminTokenHeader)

			if subtle.ConstantTimeCompare([]byte(provided), []byte(adminToken)) != 1 {
				logger.Warn("admin auth failed: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
