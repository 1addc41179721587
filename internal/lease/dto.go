// AngelaMos | 2026
// dto.go

package lease

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amontalvo1020/rentalspro/internal/user"
)

type CreateLeaseRequest struct {
	PropertyID      int64                `json:"property_id"      validate:"required,min=1"`
	UnitID          *int64               `json:"unit_id,omitempty" validate:"omitempty,min=1"`
	StartDate       time.Time            `json:"start_date"       validate:"required"`
	EndDate         time.Time            `json:"end_date"         validate:"required"`
	RentAmount      decimal.Decimal      `json:"rent_amount"`
	SecurityDeposit decimal.NullDecimal  `json:"security_deposit"`
	PetDeposit      decimal.NullDecimal  `json:"pet_deposit"`
	Tenants         []user.TenantRequest `json:"tenants,omitempty" validate:"omitempty,dive"`
}

// UpdateFinancialsRequest only touches the amounts that are present.
type UpdateFinancialsRequest struct {
	RentAmount      *decimal.Decimal `json:"rent_amount,omitempty"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit,omitempty"`
	PetDeposit      *decimal.Decimal `json:"pet_deposit,omitempty"`
}

type LeaseResponse struct {
	ID              int64               `json:"id"`
	PropertyID      int64               `json:"property_id"`
	UnitID          *int64              `json:"unit_id,omitempty"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	RentAmount      decimal.Decimal     `json:"rent_amount"`
	SecurityDeposit decimal.NullDecimal `json:"security_deposit"`
	PetDeposit      decimal.NullDecimal `json:"pet_deposit"`
	CreatedDate     time.Time           `json:"created_date"`
	UpdatedDate     *time.Time          `json:"updated_date,omitempty"`
	Active          bool                `json:"active"`
	Tenants         []user.UserResponse `json:"tenants"`
}

type DuplicateActiveResponse struct {
	PropertyID int64   `json:"property_id"`
	UnitID     *int64  `json:"unit_id,omitempty"`
	LeaseIDs   []int64 `json:"lease_ids"`
}

func (req CreateLeaseRequest) ToLease(now time.Time) Lease {
	return Lease{
		PropertyID:      req.PropertyID,
		UnitID:          req.UnitID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		PetDeposit:      req.PetDeposit,
		CreatedDate:     now,
		Active:          true,
	}
}

func ToLeaseResponse(l *Lease, tenants []user.User) LeaseResponse {
	return LeaseResponse{
		ID:              l.ID,
		PropertyID:      l.PropertyID,
		UnitID:          l.UnitID,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		RentAmount:      l.RentAmount,
		SecurityDeposit: l.SecurityDeposit,
		PetDeposit:      l.PetDeposit,
		CreatedDate:     l.CreatedDate,
		UpdatedDate:     l.UpdatedDate,
		Active:          l.Active,
		Tenants:         user.ToUserResponseList(tenants),
	}
}

func ToDuplicateActiveResponseList(dups []DuplicateActive) []DuplicateActiveResponse {
	out := make([]DuplicateActiveResponse, 0, len(dups))
	for _, d := range dups {
		out = append(out, DuplicateActiveResponse{
			PropertyID: d.Key.PropertyID,
			UnitID:     d.Key.UnitID,
			LeaseIDs:   d.LeaseIDs,
		})
	}
	return out
}
