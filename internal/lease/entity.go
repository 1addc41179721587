// AngelaMos | 2026
// entity.go

package lease

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Lease struct {
	ID              int64               `db:"id"`
	PropertyID      int64               `db:"property_id"`
	UnitID          *int64              `db:"unit_id"`
	StartDate       time.Time           `db:"start_date"`
	EndDate         time.Time           `db:"end_date"`
	RentAmount      decimal.Decimal     `db:"rent_amount"`
	SecurityDeposit decimal.NullDecimal `db:"security_deposit"`
	PetDeposit      decimal.NullDecimal `db:"pet_deposit"`
	CreatedDate     time.Time           `db:"created_date"`
	UpdatedDate     *time.Time          `db:"updated_date"`
	Active          bool                `db:"active"`
}

// Key identifies the slot a lease occupies. A nil UnitID is a lease on the
// whole property; otherwise the unit alone decides.
type Key struct {
	PropertyID int64
	UnitID     *int64
}

func (l *Lease) Key() Key {
	return Key{PropertyID: l.PropertyID, UnitID: l.UnitID}
}

func (k Key) String() string {
	if k.UnitID != nil {
		return fmt.Sprintf("unit %d", *k.UnitID)
	}
	return fmt.Sprintf("property %d", k.PropertyID)
}

// DuplicateActive is a key that currently holds more than one active lease.
type DuplicateActive struct {
	Key      Key
	LeaseIDs []int64
}
