package set_open_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	"github.com/m04kA/SLN-BookingService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRange       = "начало окна должно быть раньше конца"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/availability
// Задает рабочие часы на дату, затирая предыдущие
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SetOpenHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	day, start, end, err := req.Parse()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	entry, err := h.service.SetOpenHours(r.Context(), day, start, end)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("POST /availability - Invalid range: date=%s, start=%s, end=%s",
				req.Date, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /availability - Failed to set open hours: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Open hours set: date=%s, hours=%s-%s", req.Date, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(entry))
}
