// AngelaMos | 2026
// rules_test.go

package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

func TestCascadeRules(t *testing.T) {
	tests := []struct {
		status   status.Occupancy
		property []Effect
		unit     []Effect
	}{
		{status.Rented, []Effect{EffectMarkPaid}, nil},
		{status.Vacant, []Effect{EffectEndLease}, []Effect{EffectEndLease}},
		{status.Eviction, nil, nil},
		{status.Inactive, []Effect{EffectEndLease}, nil},
		{status.MoveOut, []Effect{EffectEndLease}, []Effect{EffectEndLease}},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.property, PropertyEffects(tt.status))
			assert.Equal(t, tt.unit, UnitEffects(tt.status))
		})
	}
}

func TestUnknownStatusHasNoEffects(t *testing.T) {
	assert.Empty(t, PropertyEffects(status.Occupancy(0)))
	assert.Empty(t, UnitEffects(status.Occupancy(42)))
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "mark_paid", EffectMarkPaid.String())
	assert.Equal(t, "end_lease", EffectEndLease.String())
	assert.Equal(t, "unknown", Effect(0).String())
}
