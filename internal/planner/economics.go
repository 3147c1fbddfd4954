package planner

import "github.com/shopspring/decimal"

// UnitEconomics is the per-unit money picture derived from raw cost inputs.
type UnitEconomics struct {
	VariableCostPerUnit float64    `json:"variable_cost_per_unit"`
	UnitProfit          float64    `json:"unit_profit"`
	Conditions          Conditions `json:"conditions,omitempty"`

	variable decimal.Decimal
	profit   decimal.Decimal
}

// ComputeUnitEconomics derives variable cost and profit per unit. It flags InvalidMargin
// when the unit profit is not positive; volume and price figures derived from such a
// margin must not be trusted.
func ComputeUnitEconomics(a BusinessAssumptions) UnitEconomics {
	variable := dec(a.ProductionCostPerUnit).Add(dec(a.ShippingCostPerUnit))
	profit := dec(a.UnitPrice).Sub(variable)

	ue := UnitEconomics{
		VariableCostPerUnit: variable.InexactFloat64(),
		UnitProfit:          profit.InexactFloat64(),
		variable:            variable,
		profit:              profit,
	}
	if !profit.IsPositive() {
		ue.Conditions = ue.Conditions.With(InvalidMargin)
	}
	return ue
}
