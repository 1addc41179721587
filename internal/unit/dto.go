// AngelaMos | 2026
// dto.go

package unit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

type CreateUnitRequest struct {
	PropertyID      int64               `json:"property_id"       validate:"omitempty,min=1"`
	UnitNumber      string              `json:"unit_number"       validate:"required,max=20"`
	Floor           *int                `json:"floor,omitempty"`
	Bedrooms        decimal.NullDecimal `json:"bedrooms"`
	Bathrooms       decimal.NullDecimal `json:"bathrooms"`
	SquareFeet      int                 `json:"square_feet"       validate:"min=0"`
	Utilities       *bool               `json:"utilities,omitempty"`
	Furnished       *bool               `json:"furnished,omitempty"`
	ParkingSpace    *bool               `json:"parking_space,omitempty"`
	StatusID        status.Occupancy    `json:"status_id"         validate:"omitempty,min=1,max=5"`
	PaymentStatusID status.Payment      `json:"payment_status_id" validate:"omitempty,min=1,max=2"`
	Active          *bool               `json:"active,omitempty"`
}

type StatusRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type UnitResponse struct {
	ID              int64               `json:"id"`
	PropertyID      int64               `json:"property_id"`
	UnitNumber      string              `json:"unit_number"`
	Floor           *int                `json:"floor,omitempty"`
	Bedrooms        decimal.NullDecimal `json:"bedrooms"`
	Bathrooms       decimal.NullDecimal `json:"bathrooms"`
	SquareFeet      int                 `json:"square_feet"`
	Utilities       *bool               `json:"utilities,omitempty"`
	Furnished       *bool               `json:"furnished,omitempty"`
	ParkingSpace    *bool               `json:"parking_space,omitempty"`
	StatusID        int                 `json:"status_id"`
	PaymentStatusID int                 `json:"payment_status_id"`
	Status          StatusRef           `json:"status"`
	PaymentStatus   StatusRef           `json:"payment_status"`
	CreatedDate     time.Time           `json:"created_date"`
	UpdatedDate     *time.Time          `json:"updated_date,omitempty"`
	Active          bool                `json:"active"`
}

// ToUnit builds a new unit row. Status defaults to Vacant and payment to
// Paid when the request leaves them unset.
func (req CreateUnitRequest) ToUnit(now time.Time) Unit {
	st := req.StatusID
	if st == 0 {
		st = status.Vacant
	}

	pay := req.PaymentStatusID
	if pay == 0 {
		pay = status.Paid
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return Unit{
		PropertyID:      req.PropertyID,
		UnitNumber:      req.UnitNumber,
		Floor:           req.Floor,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		SquareFeet:      req.SquareFeet,
		Utilities:       req.Utilities,
		Furnished:       req.Furnished,
		ParkingSpace:    req.ParkingSpace,
		StatusID:        st,
		PaymentStatusID: pay,
		CreatedDate:     now,
		Active:          active,
	}
}

func ToUnitResponse(u *Unit) UnitResponse {
	return UnitResponse{
		ID:              u.ID,
		PropertyID:      u.PropertyID,
		UnitNumber:      u.UnitNumber,
		Floor:           u.Floor,
		Bedrooms:        u.Bedrooms,
		Bathrooms:       u.Bathrooms,
		SquareFeet:      u.SquareFeet,
		Utilities:       u.Utilities,
		Furnished:       u.Furnished,
		ParkingSpace:    u.ParkingSpace,
		StatusID:        int(u.StatusID),
		PaymentStatusID: int(u.PaymentStatusID),
		Status:          StatusRef{ID: int(u.StatusID), Name: u.StatusID.String()},
		PaymentStatus:   StatusRef{ID: int(u.PaymentStatusID), Name: u.PaymentStatusID.String()},
		CreatedDate:     u.CreatedDate,
		UpdatedDate:     u.UpdatedDate,
		Active:          u.Active,
	}
}

func ToUnitResponseList(units []Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for i := range units {
		out = append(out, ToUnitResponse(&units[i]))
	}
	return out
}
