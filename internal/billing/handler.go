// AngelaMos | 2026
// handler.go

package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prombirzha/marketplace/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tariffs", func(r chi.Router) {
		r.Get("/", h.ListTariffs)
		r.Get("/{id}", h.GetTariff)
	})
}

func (h *Handler) ListTariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.service.ListTariffs(r.Context())
	if err != nil {
		core.HandleServiceError(w, err, "tariff")
		return
	}

	core.OK(w, ToTariffResponseList(tariffs))
}

func (h *Handler) GetTariff(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "tariff")
		return
	}

	tariff, err := h.service.GetTariff(r.Context(), id)
	if err != nil {
		core.HandleServiceError(w, err, "tariff")
		return
	}

	core.OK(w, ToTariffResponse(tariff))
}
