// AngelaMos | 2026
// handler.go

package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/statuses", h.ListStatuses)
	r.Get("/payment-statuses", h.ListPaymentStatuses)
	r.Get("/property-types", h.ListPropertyTypes)
}

func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListStatuses(r.Context())
	if err != nil {
		core.DomainError(w, err, "statuses")
		return
	}
	core.OK(w, rows)
}

func (h *Handler) ListPaymentStatuses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListPaymentStatuses(r.Context())
	if err != nil {
		core.DomainError(w, err, "payment statuses")
		return
	}
	core.OK(w, rows)
}

func (h *Handler) ListPropertyTypes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListPropertyTypes(r.Context())
	if err != nil {
		core.DomainError(w, err, "property types")
		return
	}
	core.OK(w, rows)
}
