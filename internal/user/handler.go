// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/prombirzha/marketplace/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	paging    core.Paging
}

func NewHandler(service *Service, paging core.Paging) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		paging:    paging,
	}
}

// RegisterAdminRoutes registers admin-only user management endpoints.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListUsers)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}/role", h.UpdateUserRole)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := h.paging.FromQuery(r)
	params := ListUsersParams{
		Limit:  page.Limit,
		Offset: page.Offset,
		Search: r.URL.Query().Get("search"),
		Role:   r.URL.Query().Get("role"),
	}

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.HandleServiceError(w, err, "user")
		return
	}

	core.Paginated(w, ToUserResponseList(users), page.Limit, page.Offset, total)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.HandleServiceError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRoleRequest
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.HandleServiceError(w, err, "user")
		return
	}

	user, err := h.service.UpdateUserRole(
		r.Context(),
		chi.URLParam(r, "userID"),
		req.Role,
	)
	if err != nil {
		core.HandleServiceError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}
