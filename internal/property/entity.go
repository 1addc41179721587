// AngelaMos | 2026
// entity.go

package property

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

type Property struct {
	ID              int64               `db:"id"`
	OwnerID         *int64              `db:"owner_id"`
	CompanyID       *int64              `db:"company_id"`
	StatusID        status.Occupancy    `db:"status_id"`
	TypeID          status.PropertyType `db:"type_id"`
	PaymentStatusID status.Payment      `db:"payment_status_id"`
	Address         string              `db:"address"`
	City            string              `db:"city"`
	State           string              `db:"state"`
	ZipCode         string              `db:"zip_code"`
	Bedrooms        decimal.NullDecimal `db:"bedrooms"`
	Bathrooms       decimal.NullDecimal `db:"bathrooms"`
	Size            *int                `db:"size"`
	Amenities       *string             `db:"amenities"`
	PurchasePrice   decimal.NullDecimal `db:"purchase_price"`
	PurchaseDate    time.Time           `db:"purchase_date"`
	Active          bool                `db:"active"`
	CreatedDate     time.Time           `db:"created_date"`
	UpdatedDate     *time.Time          `db:"updated_date"`
}
