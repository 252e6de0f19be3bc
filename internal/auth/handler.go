// AngelaMos | 2026
// handler.go

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prombirzha/marketplace/internal/company"
	"github.com/prombirzha/marketplace/internal/core"
	"github.com/prombirzha/marketplace/internal/middleware"
	"github.com/prombirzha/marketplace/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/login", h.Login)
		r.Get("/user", h.CurrentUser)
	})
}

type SessionResponse struct {
	user.UserResponse
	Company *company.CompanyResponse `json:"company"`
}

func toSessionResponse(s *Session) SessionResponse {
	resp := SessionResponse{UserResponse: user.ToUserResponse(s.User)}
	if s.Company != nil {
		c := company.ToCompanyWithTariffResponse(s.Company)
		resp.Company = &c
	}
	return resp
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Login(
		r.Context(),
		middleware.GetIdentity(r.Context()),
	)
	if err != nil {
		core.HandleServiceError(w, err, "user")
		return
	}

	core.OK(w, toSessionResponse(session))
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CurrentUser(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.HandleServiceError(w, err, "user")
		return
	}

	core.OK(w, toSessionResponse(session))
}
