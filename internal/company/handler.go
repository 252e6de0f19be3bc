// AngelaMos | 2026
// handler.go

package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/prombirzha/marketplace/internal/billing"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/middleware"
)

type Handler struct {
	service       *Service
	validator     *validator.Validate
	paging        core.Paging
	featuredLimit int
}

func NewHandler(service *Service, paging core.Paging, featuredLimit int) *Handler {
	return &Handler{
		service:       service,
		validator:     core.NewValidator(),
		paging:        paging,
		featuredLimit: featuredLimit,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, limiter func(http.Handler) http.Handler,
) {
	r.Get("/companies", h.Search)
	r.Get("/companies/{id}", h.Get)
	r.Get("/featured/companies", h.Featured)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.With(limiter).Post("/companies", h.Create)
		r.With(limiter).Patch("/companies/{id}", h.Update)
		r.Get("/dashboard/payments", h.MyPayments)
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := h.paging.FromQuery(r)
	q := r.URL.Query()
	params := SearchParams{
		Category: q.Get("category"),
		Region:   q.Get("region"),
		Search:   q.Get("search"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	companies, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.Paginated(
		w,
		ToCompanyWithTariffResponseList(companies),
		page.Limit,
		page.Offset,
		total,
	)
}

func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.Featured(
		r.Context(),
		h.paging.Limit(r, h.featuredLimit),
	)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.OK(w, ToCompanyWithTariffResponseList(companies))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.OK(w, ToCompanyWithTariffResponse(company))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	company, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		&req,
	)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.Created(w, ToCompanyResponse(company))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	var req UpdateCompanyRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}
	if req.Empty() {
		core.BadRequest(w, "no fields to update")
		return
	}

	company, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		id,
		&req,
	)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.OK(w, ToCompanyResponse(company))
}

func (h *Handler) MyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.Payments(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.HandleServiceError(w, err, "payment")
		return
	}

	core.OK(w, billing.ToPaymentResponseList(payments))
}

// SetVerification is mounted by the admin router.
func (h *Handler) SetVerification(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	var req SetVerificationRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	company, err := h.service.SetVerified(r.Context(), id, *req.IsVerified)
	if err != nil {
		core.HandleServiceError(w, err, "company")
		return
	}

	core.OK(w, ToCompanyResponse(company))
}
