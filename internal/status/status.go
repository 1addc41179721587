// AngelaMos | 2026
// status.go

package status

import (
	"fmt"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

// Occupancy is the StatusID shared by properties and units.
type Occupancy int

const (
	Rented   Occupancy = 1
	Vacant   Occupancy = 2
	Eviction Occupancy = 3
	Inactive Occupancy = 4
	MoveOut  Occupancy = 5
)

var occupancyNames = map[Occupancy]string{
	Rented:   "Rented",
	Vacant:   "Vacant",
	Eviction: "Eviction",
	Inactive: "Inactive",
	MoveOut:  "Move Out",
}

func (o Occupancy) String() string {
	if name, ok := occupancyNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Occupancy(%d)", int(o))
}

func (o Occupancy) Valid() bool {
	_, ok := occupancyNames[o]
	return ok
}

func ParseOccupancy(id int) (Occupancy, error) {
	o := Occupancy(id)
	if !o.Valid() {
		return 0, fmt.Errorf("unknown status id %d: %w", id, core.ErrInvalidInput)
	}
	return o, nil
}

// Payment is the PaymentStatusID shared by properties and units.
type Payment int

const (
	Paid   Payment = 1
	Unpaid Payment = 2
)

func (p Payment) String() string {
	switch p {
	case Paid:
		return "Paid"
	case Unpaid:
		return "Unpaid"
	default:
		return fmt.Sprintf("Payment(%d)", int(p))
	}
}

func (p Payment) Valid() bool {
	return p == Paid || p == Unpaid
}

func ParsePayment(id int) (Payment, error) {
	p := Payment(id)
	if !p.Valid() {
		return 0, fmt.Errorf("unknown payment status id %d: %w", id, core.ErrInvalidInput)
	}
	return p, nil
}

type PropertyType int

const (
	Residential PropertyType = 1
	Commercial  PropertyType = 2
)

func (t PropertyType) String() string {
	switch t {
	case Residential:
		return "Residential"
	case Commercial:
		return "Commercial"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

func (t PropertyType) HasUnits() bool {
	return t == Commercial
}
