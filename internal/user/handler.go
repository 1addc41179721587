// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amontalvo1020/rentalspro/internal/core"
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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/users", h.CreateUser)
		r.Post("/users/search", h.SearchUsers)
		r.Get("/users/{userID}", h.GetUser)
		r.Put("/users/{userID}", h.UpdateUser)
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "userID")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "username")
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var params SearchParams
	if !core.Decode(w, r, &params) {
		return
	}

	users, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.DomainError(w, err, "users")
		return
	}

	core.OK(w, ToUserResponseList(users))
}
