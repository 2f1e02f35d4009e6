package get_available_times

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	getAvailableTimes "github.com/m04kA/SLN-BookingService/internal/usecase/get_available_times"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidAddons    = "некорректный список дополнений"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgAddonNotFound    = "дополнение не найдено"
	msgIsAddon          = "дополнение нельзя забронировать как основную услугу"
	msgNotAnAddon       = "услуга не является дополнением"
	msgInvalidRequest   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), addons (optional, "2,3")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	addonIDs, err := parseAddonIDs(r.URL.Query().Get("addons"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid addons: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddons)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, addonIDs, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrAddonNotFound):
			h.logger.Warn("GET /availability - Addon not found: addons=%v", addonIDs)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, getAvailableTimes.ErrIsAddon):
			h.logger.Warn("GET /availability - Addon requested as main service: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgIsAddon)

		case errors.Is(err, getAvailableTimes.ErrNotAnAddon):
			h.logger.Warn("GET /availability - Main service in addons list: addons=%v", addonIDs)
			handlers.RespondBadRequest(w, msgNotAnAddon)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /availability - Failed to get times: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Times retrieved: service_id=%d, date=%s, times_count=%d",
		serviceID, dateStr, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// parseAddonIDs разбирает параметр addons вида "2,3"
func parseAddonIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
