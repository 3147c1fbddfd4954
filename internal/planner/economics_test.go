package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeUnitEconomics_ReferenceSnapshot(t *testing.T) {
	ue := ComputeUnitEconomics(handmadeGoods())

	assert.Equal(t, 15.0, ue.VariableCostPerUnit)
	assert.Equal(t, 85.0, ue.UnitProfit)
	assert.Empty(t, ue.Conditions)
}

func TestComputeUnitEconomics_FlagsInvalidMargin(t *testing.T) {
	tests := []struct {
		name  string
		price float64
	}{
		{"below variable cost", 10},
		{"equal to variable cost", 15},
		{"free", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := handmadeGoods()
			a.UnitPrice = tc.price

			ue := ComputeUnitEconomics(a)

			assert.True(t, ue.Conditions.Has(InvalidMargin))
			assert.Equal(t, tc.price-15, ue.UnitProfit)
		})
	}
}

func TestComputeUnitEconomics_AddsCostsWithoutFloatDrift(t *testing.T) {
	a := handmadeGoods()
	a.ProductionCostPerUnit = 0.1
	a.ShippingCostPerUnit = 0.2
	a.UnitPrice = 0.3

	ue := ComputeUnitEconomics(a)

	assert.Equal(t, 0.3, ue.VariableCostPerUnit)
	assert.Equal(t, 0.0, ue.UnitProfit)
	assert.True(t, ue.Conditions.Has(InvalidMargin))
}
