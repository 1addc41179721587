// AngelaMos | 2026
// handler.go

package unit

import (
	"net/http"
	"strconv"

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

		r.Get("/units/{unitID}", h.GetUnit)
		r.Get("/properties/{propertyID}/units", h.ListPropertyUnits)
		r.Post("/units", h.CreateUnit)
		r.Post("/units/batch", h.CreateUnits)
	})
}

func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "unitID")
	if !ok {
		return
	}

	u, err := h.service.GetUnit(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "unit")
		return
	}

	core.OK(w, ToUnitResponse(u))
}

func (h *Handler) ListPropertyUnits(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := core.PathID(w, r, "propertyID")
	if !ok {
		return
	}

	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			core.BadRequest(w, "active must be a boolean")
			return
		}
		active = &v
	}

	units, err := h.service.ListByProperty(r.Context(), propertyID, active)
	if err != nil {
		core.DomainError(w, err, "units")
		return
	}

	core.OK(w, ToUnitResponseList(units))
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req CreateUnitRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	u, err := h.service.CreateUnit(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "unit")
		return
	}

	core.Created(w, ToUnitResponse(u))
}

type batchCreateResponse struct {
	Created int `json:"created"`
}

func (h *Handler) CreateUnits(w http.ResponseWriter, r *http.Request) {
	var reqs []CreateUnitRequest
	if !core.Decode(w, r, &reqs) || !core.ValidateVar(w, reqs, "required,min=1,dive") {
		return
	}

	n, err := h.service.CreateUnits(r.Context(), reqs)
	if err != nil {
		core.DomainError(w, err, "unit")
		return
	}

	core.Created(w, batchCreateResponse{Created: n})
}
