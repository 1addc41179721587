// AngelaMos | 2026
// handler.go

package occupancy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/status"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes mounts the status routes behind manager and the lease
// writes behind authenticator.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	manager func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/leases", h.PostLease)
		r.Put("/leases/{leaseID}", h.UpdateLease)

		r.Group(func(r chi.Router) {
			r.Use(manager)

			r.Patch("/properties/{propertyID}/status", h.PatchPropertyStatus)
			r.Patch("/properties/{propertyID}/payment-status", h.PatchPropertyPaymentStatus)
			r.Patch("/units/{unitID}/status", h.PatchUnitStatus)
			r.Patch("/units/{unitID}/payment-status", h.PatchUnitPaymentStatus)
		})
	})
}

func (h *Handler) PatchPropertyStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "propertyID")
	if !ok {
		return
	}

	st, ok := occupancyParam(w, r)
	if !ok {
		return
	}

	res, err := h.engine.ApplyPropertyStatusChange(r.Context(), id, st)
	if err != nil {
		core.DomainError(w, err, "property")
		return
	}

	core.OK(w, toCascadeResponse(id, res))
}

func (h *Handler) PatchUnitStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "unitID")
	if !ok {
		return
	}

	st, ok := occupancyParam(w, r)
	if !ok {
		return
	}

	res, err := h.engine.ApplyUnitStatusChange(r.Context(), id, st)
	if err != nil {
		core.DomainError(w, err, "unit")
		return
	}

	core.OK(w, toCascadeResponse(id, res))
}

func (h *Handler) PatchPropertyPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "propertyID")
	if !ok {
		return
	}

	pay, ok := paymentParam(w, r)
	if !ok {
		return
	}

	p, err := h.engine.SetPropertyPaymentStatus(r.Context(), id, pay)
	if err != nil {
		core.DomainError(w, err, "property")
		return
	}

	core.OK(w, PaymentStatusResponse{
		ID:              p.ID,
		PaymentStatusID: int(p.PaymentStatusID),
		PaymentStatus:   p.PaymentStatusID.String(),
	})
}

func (h *Handler) PatchUnitPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "unitID")
	if !ok {
		return
	}

	pay, ok := paymentParam(w, r)
	if !ok {
		return
	}

	u, err := h.engine.SetUnitPaymentStatus(r.Context(), id, pay)
	if err != nil {
		core.DomainError(w, err, "unit")
		return
	}

	core.OK(w, PaymentStatusResponse{
		ID:              u.ID,
		PaymentStatusID: int(u.PaymentStatusID),
		PaymentStatus:   u.PaymentStatusID.String(),
	})
}

func (h *Handler) PostLease(w http.ResponseWriter, r *http.Request) {
	var req lease.CreateLeaseRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	res, err := h.engine.PostLease(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "property or unit")
		return
	}

	core.Created(w, toPostLeaseResponse(res))
}

func (h *Handler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "leaseID")
	if !ok {
		return
	}

	var req lease.UpdateFinancialsRequest
	if !core.Decode(w, r, &req) {
		return
	}

	l, changed, err := h.engine.UpdateLeaseFinancials(r.Context(), id, req)
	if err != nil {
		core.DomainError(w, err, "lease")
		return
	}

	core.OK(w, toUpdateLeaseResponse(l, changed))
}

func occupancyParam(w http.ResponseWriter, r *http.Request) (status.Occupancy, bool) {
	raw, ok := core.QueryInt(w, r, "statusID")
	if !ok {
		return 0, false
	}

	st, err := status.ParseOccupancy(raw)
	if err != nil {
		core.BadRequest(w, err.Error())
		return 0, false
	}
	return st, true
}

func paymentParam(w http.ResponseWriter, r *http.Request) (status.Payment, bool) {
	raw, ok := core.QueryInt(w, r, "statusID")
	if !ok {
		return 0, false
	}

	pay, err := status.ParsePayment(raw)
	if err != nil {
		core.BadRequest(w, err.Error())
		return 0, false
	}
	return pay, true
}
