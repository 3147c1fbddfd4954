package report

import "github.com/Simplici0/bizcal/internal/planner"

// AdvisorBrief is the numeric context a narrative advisor works from.
type AdvisorBrief struct {
	YearlyProfitGoal    float64            `json:"yearly_profit_goal"`
	WeeklyWorkHours     float64            `json:"weekly_work_hours"`
	UnitPrice           float64            `json:"unit_price"`
	RecommendedPrice    *float64           `json:"recommended_price"`
	ProductionHours     float64            `json:"production_hours"`
	SalesHoursPerSale   float64            `json:"sales_hours_per_sale"`
	SalesTimePercentage float64            `json:"sales_time_percentage"`
	EffectiveHourlyRate *float64           `json:"effective_hourly_rate,omitempty"`
	IsOverCapacity      bool               `json:"is_over_capacity"`
	WeeklyHourGap       float64            `json:"weekly_hour_gap"`
	YearlyUnitsPlanned  float64            `json:"yearly_units_planned"`
	Conditions          planner.Conditions `json:"conditions,omitempty"`
}

// Brief extracts the advisor context from a plan. The hourly rate is omitted when it is
// undefined, and the recommended price is null when it could not be solved.
func Brief(plan planner.Plan) AdvisorBrief {
	rec := plan.Recommendation
	brief := AdvisorBrief{
		YearlyProfitGoal:    plan.Assumptions.YearlyProfitGoal,
		WeeklyWorkHours:     plan.Assumptions.WeeklyWorkHours,
		UnitPrice:           plan.Assumptions.UnitPrice,
		ProductionHours:     plan.Time.ProductionHours,
		SalesHoursPerSale:   plan.Time.SalesHoursPerUnit,
		SalesTimePercentage: plan.Time.SalesTimePercentage,
		IsOverCapacity:      rec.IsOverCapacity,
		WeeklyHourGap:       rec.WeeklyHourGap,
		Conditions:          plan.Conditions,
	}
	if priceReliable(plan.Conditions) {
		price := rec.RecommendedPrice.Round(2).InexactFloat64()
		brief.RecommendedPrice = &price
	}
	if !plan.Conditions.Has(planner.UndefinedRate) {
		rate := rec.EffectiveHourlyRate
		brief.EffectiveHourlyRate = &rate
	}
	if yearly, ok := planner.MetricFor(plan.Projection, planner.Yearly); ok {
		brief.YearlyUnitsPlanned = yearly.Units
	}
	return brief
}
