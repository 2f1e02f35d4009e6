package manage_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings"
)

const (
	actionView   = "view"
	actionCancel = "cancel"
)

const (
	msgMissingToken    = "токен управления обязателен"
	msgUnknownAction   = "неизвестное действие, ожидается view или cancel"
	msgBookingNotFound = "бронирование не найдено"
	msgCannotCancel    = "бронирование уже отменено"
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

// Handle GET /api/bookings/manage
// Query params: token (required), action (optional: view | cancel, default view)
// Ссылка с токеном приходит клиенту в письме подтверждения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.logger.Warn("GET /bookings/manage - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	action := r.URL.Query().Get("action")
	if action == "" {
		action = actionView
	}

	switch action {
	case actionView:
		h.handleView(w, r, token)
	case actionCancel:
		h.handleCancel(w, r, token)
	default:
		h.logger.Warn("GET /bookings/manage - Unknown action: %s", action)
		handlers.RespondBadRequest(w, msgUnknownAction)
	}
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request, token string) {
	booking, err := h.service.GetByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/manage - Booking not found")
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/manage - Failed to get booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/manage - Booking viewed: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceModel(booking))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request, token string) {
	booking, err := h.service.CancelByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/manage - Booking not found for cancel")
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("GET /bookings/manage - Booking already cancelled")
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("GET /bookings/manage - Failed to cancel booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/manage - Booking cancelled: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceModel(booking))
}
