// AngelaMos | 2026
// dto.go

package property

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amontalvo1020/rentalspro/internal/company"
	"github.com/amontalvo1020/rentalspro/internal/status"
	"github.com/amontalvo1020/rentalspro/internal/unit"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

// CreatePropertyRequest carries the property and, for commercial
// properties, its units. Unit property ids are assigned on insert.
type CreatePropertyRequest struct {
	OwnerID         *int64                   `json:"owner_id,omitempty"`
	CompanyID       *int64                   `json:"company_id,omitempty"`
	StatusID        status.Occupancy         `json:"status_id"         validate:"omitempty,min=1,max=5"`
	TypeID          status.PropertyType      `json:"type_id"           validate:"required,min=1,max=2"`
	PaymentStatusID status.Payment           `json:"payment_status_id" validate:"omitempty,min=1,max=2"`
	Address         string                   `json:"address"           validate:"required,max=255"`
	City            string                   `json:"city"              validate:"required,max=100"`
	State           string                   `json:"state"             validate:"required,max=50"`
	ZipCode         string                   `json:"zip_code"          validate:"required,max=20"`
	Bedrooms        decimal.NullDecimal      `json:"bedrooms"`
	Bathrooms       decimal.NullDecimal      `json:"bathrooms"`
	Size            *int                     `json:"size,omitempty"    validate:"omitempty,min=0"`
	Amenities       *string                  `json:"amenities,omitempty"`
	PurchasePrice   decimal.NullDecimal      `json:"purchase_price"`
	PurchaseDate    time.Time                `json:"purchase_date"`
	Units           []unit.CreateUnitRequest `json:"units,omitempty"   validate:"omitempty,dive"`
}

// UpdatePropertyRequest only touches the fields that are present. Status
// and payment status have their own endpoints.
type UpdatePropertyRequest struct {
	OwnerID       *int64               `json:"owner_id,omitempty"`
	CompanyID     *int64               `json:"company_id,omitempty"`
	TypeID        *status.PropertyType `json:"type_id,omitempty"   validate:"omitempty,min=1,max=2"`
	Address       *string              `json:"address,omitempty"   validate:"omitempty,max=255"`
	City          *string              `json:"city,omitempty"      validate:"omitempty,max=100"`
	State         *string              `json:"state,omitempty"     validate:"omitempty,max=50"`
	ZipCode       *string              `json:"zip_code,omitempty"  validate:"omitempty,max=20"`
	Bedrooms      *decimal.Decimal     `json:"bedrooms,omitempty"`
	Bathrooms     *decimal.Decimal     `json:"bathrooms,omitempty"`
	Size          *int                 `json:"size,omitempty"      validate:"omitempty,min=0"`
	Amenities     *string              `json:"amenities,omitempty"`
	PurchasePrice *decimal.Decimal     `json:"purchase_price,omitempty"`
	PurchaseDate  *time.Time           `json:"purchase_date,omitempty"`
	Active        *bool                `json:"active,omitempty"`
}

type SearchParams struct {
	Address       *string `json:"address,omitempty"`
	PaymentStatus *int    `json:"payment_status,omitempty"`
	Status        []int   `json:"status,omitempty"`
	Type          []int   `json:"type,omitempty"`
	OwnerID       *int64  `json:"user_id,omitempty"`
	CompanyID     *int64  `json:"company_id,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

type PropertyResponse struct {
	ID              int64                    `json:"id"`
	OwnerID         *int64                   `json:"owner_id,omitempty"`
	CompanyID       *int64                   `json:"company_id,omitempty"`
	StatusID        int                      `json:"status_id"`
	Status          string                   `json:"status"`
	TypeID          int                      `json:"type_id"`
	Type            string                   `json:"type"`
	PaymentStatusID int                      `json:"payment_status_id"`
	PaymentStatus   string                   `json:"payment_status"`
	Address         company.Address          `json:"address"`
	Bedrooms        decimal.NullDecimal      `json:"bedrooms"`
	Bathrooms       decimal.NullDecimal      `json:"bathrooms"`
	Size            *int                     `json:"size,omitempty"`
	Amenities       *string                  `json:"amenities,omitempty"`
	PurchasePrice   decimal.NullDecimal      `json:"purchase_price"`
	PurchaseDate    time.Time                `json:"purchase_date"`
	Active          bool                     `json:"active"`
	CreatedDate     time.Time                `json:"created_date"`
	UpdatedDate     *time.Time               `json:"updated_date,omitempty"`
	Owner           *user.UserResponse       `json:"owner,omitempty"`
	Company         *company.CompanyResponse `json:"company,omitempty"`
	Units           []unit.UnitResponse      `json:"units,omitempty"`
}

// Detail is a property with its related rows loaded.
type Detail struct {
	Property *Property
	Owner    *user.User
	Company  *company.Company
	Units    []unit.Unit
}

func (req CreatePropertyRequest) toProperty(now time.Time) Property {
	st := req.StatusID
	if st == 0 {
		st = status.Vacant
	}

	pay := req.PaymentStatusID
	if pay == 0 {
		pay = status.Paid
	}

	return Property{
		OwnerID:         req.OwnerID,
		CompanyID:       req.CompanyID,
		StatusID:        st,
		TypeID:          req.TypeID,
		PaymentStatusID: pay,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Size:            req.Size,
		Amenities:       req.Amenities,
		PurchasePrice:   req.PurchasePrice,
		PurchaseDate:    req.PurchaseDate,
		Active:          true,
		CreatedDate:     now,
	}
}

func ToPropertyResponse(d Detail) PropertyResponse {
	p := d.Property
	resp := PropertyResponse{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		CompanyID:       p.CompanyID,
		StatusID:        int(p.StatusID),
		Status:          p.StatusID.String(),
		TypeID:          int(p.TypeID),
		Type:            p.TypeID.String(),
		PaymentStatusID: int(p.PaymentStatusID),
		PaymentStatus:   p.PaymentStatusID.String(),
		Address: company.Address{
			Address: p.Address,
			City:    p.City,
			State:   p.State,
			ZipCode: p.ZipCode,
		},
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Size:          p.Size,
		Amenities:     p.Amenities,
		PurchasePrice: p.PurchasePrice,
		PurchaseDate:  p.PurchaseDate,
		Active:        p.Active,
		CreatedDate:   p.CreatedDate,
		UpdatedDate:   p.UpdatedDate,
	}

	if d.Owner != nil {
		owner := user.ToUserResponse(d.Owner)
		resp.Owner = &owner
	}
	if d.Company != nil {
		c := company.ToCompanyResponse(d.Company)
		resp.Company = &c
	}
	if len(d.Units) > 0 {
		resp.Units = unit.ToUnitResponseList(d.Units)
	}

	return resp
}

func ToPropertyResponseList(details []Detail) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(details))
	for _, d := range details {
		out = append(out, ToPropertyResponse(d))
	}
	return out
}
