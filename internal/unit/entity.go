// AngelaMos | 2026
// entity.go

package unit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

type Unit struct {
	ID              int64               `db:"id"                json:"id"`
	PropertyID      int64               `db:"property_id"       json:"property_id"`
	UnitNumber      string              `db:"unit_number"       json:"unit_number"`
	Floor           *int                `db:"floor"             json:"floor,omitempty"`
	Bedrooms        decimal.NullDecimal `db:"bedrooms"          json:"bedrooms"`
	Bathrooms       decimal.NullDecimal `db:"bathrooms"         json:"bathrooms"`
	SquareFeet      int                 `db:"square_feet"       json:"square_feet"`
	Utilities       *bool               `db:"utilities"         json:"utilities,omitempty"`
	Furnished       *bool               `db:"furnished"         json:"furnished,omitempty"`
	ParkingSpace    *bool               `db:"parking_space"     json:"parking_space,omitempty"`
	StatusID        status.Occupancy    `db:"status_id"         json:"status_id"`
	PaymentStatusID status.Payment      `db:"payment_status_id" json:"payment_status_id"`
	CreatedDate     time.Time           `db:"created_date"      json:"created_date"`
	UpdatedDate     *time.Time          `db:"updated_date"      json:"updated_date,omitempty"`
	Active          bool                `db:"active"            json:"active"`
}
