// AngelaMos | 2026
// handler.go

package review

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
	r.Get("/companies/{id}/reviews", h.List)
	r.With(authenticator, limiter).Post("/companies/{id}/reviews", h.Create)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	reviews, err := h.service.ListForCompany(r.Context(), companyID)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.OK(w, ToReviewWithCustomerResponseList(reviews))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	var req CreateReviewRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "review")
		return
	}

	review, _, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		companyID,
		&req,
	)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.Created(w, ToReviewResponse(review))
}
