package planner

import "github.com/shopspring/decimal"

// PriceSolution is the price that meets the profit goal when every available hour is
// spent producing and selling. Money fields stay exact so that
// RecommendedPrice - VariableCostPerUnit == RequiredProfitPerUnit holds without drift.
type PriceSolution struct {
	MaxAnnualUnits        float64         `json:"max_annual_units"`
	RequiredProfitPerUnit decimal.Decimal `json:"required_profit_per_unit"`
	VariableCostPerUnit   decimal.Decimal `json:"variable_cost_per_unit"`
	RecommendedPrice      decimal.Decimal `json:"recommended_price"`
	Conditions            Conditions      `json:"conditions,omitempty"`
}

// VolumeSolution is a unit count per year.
type VolumeSolution struct {
	AnnualUnits float64    `json:"annual_units"`
	Conditions  Conditions `json:"conditions,omitempty"`

	units decimal.Decimal
}

// SolveRecommendedPrice inverts the model for price under the capacity ceiling:
// maxAnnualUnits = weeklyHours*52 / hoursPerUnit, requiredProfit = goal / maxAnnualUnits,
// price = requiredProfit + variableCost. The capacity ceiling is not rounded.
func SolveRecommendedPrice(a BusinessAssumptions, tm TimeModel) PriceSolution {
	variable := dec(a.ProductionCostPerUnit).Add(dec(a.ShippingCostPerUnit))
	ps := PriceSolution{
		VariableCostPerUnit: variable,
		RecommendedPrice:    variable,
	}

	total := tm.total
	if tm.Degenerate() || !total.IsPositive() {
		ps.Conditions = ps.Conditions.With(DegenerateTimeModel)
	}
	annualHours := dec(a.WeeklyWorkHours).Mul(weeksPerYear)
	if !annualHours.IsPositive() {
		ps.Conditions = ps.Conditions.With(NoCapacity)
	}
	if !ps.Conditions.Reliable() {
		return ps
	}

	ps.MaxAnnualUnits = annualHours.Div(total).InexactFloat64()
	// goal / (annualHours / total), folded into one division.
	ps.RequiredProfitPerUnit = dec(a.YearlyProfitGoal).Mul(total).Div(annualHours)
	ps.RecommendedPrice = ps.RequiredProfitPerUnit.Add(variable)
	return ps
}

// SolveRequiredVolume returns the fewest units per year that meet the profit goal at the
// current price.
func SolveRequiredVolume(a BusinessAssumptions, ue UnitEconomics) VolumeSolution {
	return ceilOverMargin(dec(a.YearlyProfitGoal), ue)
}

// SolveBreakEvenVolume returns the fewest units per year whose margin covers the annual
// fixed costs.
func SolveBreakEvenVolume(annualFixedCosts float64, ue UnitEconomics) VolumeSolution {
	return ceilOverMargin(dec(annualFixedCosts), ue)
}

func ceilOverMargin(amount decimal.Decimal, ue UnitEconomics) VolumeSolution {
	if ue.Conditions.Has(InvalidMargin) || !ue.profit.IsPositive() {
		return VolumeSolution{Conditions: Conditions{InvalidMargin}}
	}
	units := amount.Div(ue.profit).Ceil()
	return VolumeSolution{AnnualUnits: units.InexactFloat64(), units: units}
}
