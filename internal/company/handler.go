// AngelaMos | 2026
// handler.go

package company

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/companies/{companyID}", h.GetCompany)
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := core.PathID(w, r, "companyID")
	if !ok {
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "company")
		return
	}

	core.OK(w, ToCompanyResponse(c))
}
