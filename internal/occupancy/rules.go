// AngelaMos | 2026
// rules.go

package occupancy

import (
	"slices"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

// Effect is a secondary write triggered by a status change.
type Effect int

const (
	// EffectMarkPaid sets the entity's payment status to Paid.
	EffectMarkPaid Effect = iota + 1
	// EffectEndLease deactivates the active lease for the entity and every
	// tenant linked to it.
	EffectEndLease
)

func (e Effect) String() string {
	switch e {
	case EffectMarkPaid:
		return "mark_paid"
	case EffectEndLease:
		return "end_lease"
	default:
		return "unknown"
	}
}

// Eviction has no property cascade and Rented does not touch a unit's
// payment status. Both are inherited behavior awaiting product sign-off.
var (
	propertyRules = map[status.Occupancy][]Effect{
		status.Rented:   {EffectMarkPaid},
		status.Vacant:   {EffectEndLease},
		status.Eviction: nil,
		status.Inactive: {EffectEndLease},
		status.MoveOut:  {EffectEndLease},
	}

	unitRules = map[status.Occupancy][]Effect{
		status.Rented:   nil,
		status.Vacant:   {EffectEndLease},
		status.Eviction: nil,
		status.Inactive: nil,
		status.MoveOut:  {EffectEndLease},
	}
)

func PropertyEffects(s status.Occupancy) []Effect {
	return propertyRules[s]
}

func UnitEffects(s status.Occupancy) []Effect {
	return unitRules[s]
}

func hasEffect(effects []Effect, want Effect) bool {
	return slices.Contains(effects, want)
}
