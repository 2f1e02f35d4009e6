package sync_calendar

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	syncCalendar "github.com/m04kA/SLN-BookingService/internal/usecase/sync_calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange       = "некорректный период сверки"
	msgSyncDisabled       = "синхронизация с календарем выключена"
	msgSyncFailed         = "внешний календарь недоступен"
)

type Handler struct {
	useCase SyncCalendarUseCase
	logger  Logger
}

func NewHandler(useCase SyncCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/availability/sync
// Пустое тело допустимо - сверяется окно по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SyncCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /availability/sync - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability/sync - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, syncCalendar.ErrSyncDisabled):
			h.logger.Warn("POST /availability/sync - Sync is disabled")
			handlers.RespondError(w, http.StatusBadGateway, msgSyncDisabled)

		case errors.Is(err, syncCalendar.ErrSyncFailed):
			h.logger.Error("POST /availability/sync - Sync failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgSyncFailed)

		case errors.Is(err, syncCalendar.ErrInvalidInput):
			h.logger.Warn("POST /availability/sync - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /availability/sync - Failed to sync: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/sync - Sync done: pushed=%d, restored=%d, removed=%d, failed=%d",
		result.Pushed, result.Restored, result.Removed, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
