// AngelaMos | 2026
// handler.go

package property

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

		r.Post("/properties", h.CreateProperty)
		r.Post("/properties/search", h.SearchProperties)
		r.Get("/properties/{propertyID}", h.GetProperty)
		r.Put("/properties/{propertyID}", h.UpdateProperty)
	})
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "propertyID")
	if !ok {
		return
	}

	d, err := h.service.GetProperty(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "property")
		return
	}

	core.OK(w, ToPropertyResponse(*d))
}

func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	var params SearchParams
	if !core.Decode(w, r, &params) {
		return
	}

	details, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.DomainError(w, err, "properties")
		return
	}

	core.OK(w, ToPropertyResponseList(details))
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	d, err := h.service.CreateProperty(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "property")
		return
	}

	core.Created(w, ToPropertyResponse(*d))
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "propertyID")
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	p, err := h.service.UpdateProperty(r.Context(), id, req)
	if err != nil {
		core.DomainError(w, err, "property")
		return
	}

	core.OK(w, ToPropertyResponse(Detail{Property: p}))
}
