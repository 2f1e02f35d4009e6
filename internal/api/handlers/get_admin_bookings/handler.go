package get_admin_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректное значение includeCancelled"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/bookings
// Query params: from, to (optional, YYYY-MM-DD), includeCancelled (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter := models.ListFilter{}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.FromDate = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.ToDate = &to
	}

	if rawInclude := r.URL.Query().Get("includeCancelled"); rawInclude != "" {
		include, err := strconv.ParseBool(rawInclude)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		filter.IncludeCancelled = include
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, FromServiceModels(list))
}
