// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/middleware"
	"github.com/amontalvo1020/rentalspro/internal/user"
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
	r.Post("/users/validate", h.Validate)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/auth/me", h.GetMe)
		r.Post("/auth/logout", h.Logout)
	})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	resp, err := h.service.Validate(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "invalid username or password")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	u, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.GetClaims(r.Context())); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
