package add_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	"github.com/m04kA/SLN-BookingService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRange       = "начало блокировки должно быть раньше конца"
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

// Handle POST /api/availability/block
// Блокирует интервал дня: слоты в нем перестают выдаваться
// Существующие бронирования блокировка не трогает
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AddBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	day, start, end, err := req.Parse()
	if err != nil {
		h.logger.Warn("POST /availability/block - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	entry, err := h.service.AddBlock(r.Context(), day, start, end, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("POST /availability/block - Invalid range: date=%s, start=%s, end=%s",
				req.Date, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /availability/block - Failed to add block: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/block - Block added: id=%d, date=%s, block=%s-%s",
		entry.ID, req.Date, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(entry))
}
