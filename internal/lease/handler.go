// AngelaMos | 2026
// handler.go

package lease

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

		r.Get("/leases/active", h.GetActiveLease)
		r.Get("/leases/{leaseID}", h.GetLease)
	})
}

func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "leaseID")
	if !ok {
		return
	}

	l, tenants, err := h.service.GetLease(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "lease")
		return
	}

	core.OK(w, ToLeaseResponse(l, tenants))
}

func (h *Handler) GetActiveLease(w http.ResponseWriter, r *http.Request) {
	propertyID, err := core.OptionalQueryInt64(r, "propertyID")
	if err != nil || propertyID == nil || *propertyID < 1 {
		core.BadRequest(w, "propertyID must be a positive integer")
		return
	}

	unitID, err := core.OptionalQueryInt64(r, "unitID")
	if err != nil || (unitID != nil && *unitID < 1) {
		core.BadRequest(w, "unitID must be a positive integer")
		return
	}

	l, tenants, err := h.service.GetActiveLease(r.Context(), Key{
		PropertyID: *propertyID,
		UnitID:     unitID,
	})
	if err != nil {
		core.DomainError(w, err, "lease")
		return
	}

	core.OK(w, ToLeaseResponse(l, tenants))
}
