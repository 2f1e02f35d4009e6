package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SLN-BookingService/internal/usecase/get_available_dates"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidAddons    = "некорректный список дополнений"
	msgMissingPeriod    = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный период дат"
	msgServiceNotFound  = "услуга не найдена"
	msgAddonNotFound    = "дополнение не найдено"
	msgIsAddon          = "дополнение нельзя забронировать как основную услугу"
	msgNotAnAddon       = "услуга не является дополнением"
	msgInvalidRequest   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/availability/dates
// Query params: serviceId (required), from, to (required, YYYY-MM-DD), addons (optional, "2,3")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availability/dates - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	addonIDs, err := parseAddonIDs(r.URL.Query().Get("addons"))
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid addons: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddons)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /availability/dates - Missing period")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, addonIDs, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /availability/dates - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableDates.ErrAddonNotFound):
			h.logger.Warn("GET /availability/dates - Addon not found: addons=%v", addonIDs)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, getAvailableDates.ErrIsAddon):
			h.logger.Warn("GET /availability/dates - Addon requested as main service: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgIsAddon)

		case errors.Is(err, getAvailableDates.ErrNotAnAddon):
			h.logger.Warn("GET /availability/dates - Main service in addons list: addons=%v", addonIDs)
			handlers.RespondBadRequest(w, msgNotAnAddon)

		case errors.Is(err, getAvailableDates.ErrInvalidRange):
			h.logger.Warn("GET /availability/dates - Invalid range: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /availability/dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /availability/dates - Failed to get dates: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/dates - Dates retrieved: service_id=%d, dates_count=%d",
		serviceID, len(result.Dates))
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
