// AngelaMos | 2026
// handler.go

package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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
	r.Get("/orders", h.Search)
	r.Get("/orders/{id}", h.Get)
	r.Get("/featured/orders", h.Featured)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.With(limiter).Post("/orders", h.Create)
		r.With(limiter).Patch("/orders/{id}", h.Update)
		r.Get("/dashboard/my-orders", h.MyOrders)
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := h.paging.FromQuery(r)
	q := r.URL.Query()

	budgetMin, err := core.QueryDecimal(r, "budgetMin")
	if err != nil {
		core.BadRequest(w, "budgetMin must be a number")
		return
	}
	budgetMax, err := core.QueryDecimal(r, "budgetMax")
	if err != nil {
		core.BadRequest(w, "budgetMax must be a number")
		return
	}

	params := SearchParams{
		Category:  q.Get("category"),
		Region:    q.Get("region"),
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		BudgetMin: budgetMin,
		BudgetMax: budgetMax,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}

	orders, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.Paginated(
		w,
		ToOrderWithCustomerResponseList(orders),
		page.Limit,
		page.Offset,
		total,
	)
}

func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Featured(
		r.Context(),
		h.paging.Limit(r, h.featuredLimit),
	)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.OK(w, ToOrderWithCustomerResponseList(orders))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.OK(w, ToOrderWithCustomerResponse(order))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	order, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		&req,
	)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.Created(w, ToOrderResponse(order))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	var req UpdateOrderRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}
	if req.Empty() {
		core.BadRequest(w, "no fields to update")
		return
	}

	order, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		id,
		&req,
	)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListByCustomer(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.HandleServiceError(w, err, "order")
		return
	}

	core.OK(w, ToOrderWithCustomerResponseList(orders))
}
