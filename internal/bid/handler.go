// AngelaMos | 2026
// handler.go

package bid

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, limiter func(http.Handler) http.Handler,
) {
	r.Get("/orders/{id}/responses", h.ListForOrder)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.With(limiter).Post("/orders/{id}/responses", h.Create)
		r.With(limiter).Patch("/order-responses/{id}/status", h.UpdateStatus)
		r.Get("/dashboard/my-responses", h.MyResponses)
	})
}

func (h *Handler) ListForOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	bids, err := h.service.ListForOrder(r.Context(), orderID)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.OK(w, ToBidWithCompanyResponseList(bids))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	orderID, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	var req CreateBidRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "order response")
		return
	}

	bid, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		orderID,
		&req,
	)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.Created(w, ToBidResponse(bid))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "order response")
		return
	}

	var req UpdateStatusRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "order response")
		return
	}

	bid, err := h.service.UpdateStatus(
		r.Context(),
		middleware.GetUserID(r.Context()),
		id,
		req.Status,
	)
	if err != nil {
		core.HandleServiceError(w, err, "order response")
		return
	}

	core.OK(w, ToBidResponse(bid))
}

func (h *Handler) MyResponses(w http.ResponseWriter, r *http.Request) {
	bids, err := h.service.ListForCaller(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.HandleServiceError(w, err, "order response")
		return
	}

	core.OK(w, ToBidWithOrderResponseList(bids))
}
