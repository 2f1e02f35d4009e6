package list_services

import (
	"net/http"

	"github.com/m04kA/SLN-BookingService/internal/api/handlers"
)

type Handler struct {
	catalog CatalogService
	logger  Logger
}

func NewHandler(catalog CatalogService, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, addons, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Catalog retrieved: services=%d, addons=%d", len(services), len(addons))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(services, addons))
}
