// AngelaMos | 2026
// dto.go

package occupancy

import (
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

type CascadeResponse struct {
	ID                 int64  `json:"id"`
	StatusID           int    `json:"status_id"`
	Status             string `json:"status"`
	PaymentStatusID    int    `json:"payment_status_id"`
	PaymentStatus      string `json:"payment_status"`
	Changed            bool   `json:"changed"`
	EndedLeaseID       *int64 `json:"ended_lease_id,omitempty"`
	DeactivatedTenants int64  `json:"deactivated_tenants"`
}

type PaymentStatusResponse struct {
	ID              int64  `json:"id"`
	PaymentStatusID int    `json:"payment_status_id"`
	PaymentStatus   string `json:"payment_status"`
}

type PostLeaseResponse struct {
	Lease             lease.LeaseResponse `json:"lease"`
	SupersededLeaseID *int64              `json:"superseded_lease_id,omitempty"`
}

type UpdateLeaseResponse struct {
	Lease   lease.LeaseResponse `json:"lease"`
	Changed bool                `json:"changed"`
}

func toCascadeResponse(id int64, c *Cascade) CascadeResponse {
	return CascadeResponse{
		ID:                 id,
		StatusID:           int(c.Status),
		Status:             c.Status.String(),
		PaymentStatusID:    int(c.PaymentStatus),
		PaymentStatus:      c.PaymentStatus.String(),
		Changed:            c.Changed,
		EndedLeaseID:       c.EndedLeaseID,
		DeactivatedTenants: c.DeactivatedTenants,
	}
}

func toPostLeaseResponse(res *PostLeaseResult) PostLeaseResponse {
	return PostLeaseResponse{
		Lease:             lease.ToLeaseResponse(res.Lease, res.Tenants),
		SupersededLeaseID: res.SupersededLeaseID,
	}
}

func toUpdateLeaseResponse(l *lease.Lease, changed bool) UpdateLeaseResponse {
	return UpdateLeaseResponse{
		Lease:   lease.ToLeaseResponse(l, []user.User{}),
		Changed: changed,
	}
}
