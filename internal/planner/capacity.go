package planner

import "github.com/shopspring/decimal"

// minWorkedHours is the annual hour count below which an hourly rate is undefined.
var minWorkedHours = decimal.New(1, -9)

// CapacityReport compares the hours a plan needs against the hours available.
type CapacityReport struct {
	RequiredWeeklyHours  float64    `json:"required_weekly_hours"`
	AvailableWeeklyHours float64    `json:"available_weekly_hours"`
	IsOverCapacity       bool       `json:"is_over_capacity"`
	WeeklyHourGap        float64    `json:"weekly_hour_gap"`
	WeeklyHourSurplus    float64    `json:"weekly_hour_surplus"`
	EffectiveHourlyRate  float64    `json:"effective_hourly_rate"`
	MeetsDesiredRate     *bool      `json:"meets_desired_rate,omitempty"`
	Conditions           Conditions `json:"conditions,omitempty"`
}

// Reconcile checks the weekly row of a projection against weekly work hours, and derives
// the effective hourly rate from the yearly row. When the yearly row works no hours the
// rate is left at zero and UndefinedRate is raised.
//
// Hours are compared unrounded. The gap rounds up and the surplus rounds down, so an
// over-capacity plan never reports a zero gap.
func Reconcile(a BusinessAssumptions, tm TimeModel, weekly, yearly PeriodMetric) CapacityReport {
	required := weekly.exactHours()
	available := dec(a.WeeklyWorkHours)

	cr := CapacityReport{
		RequiredWeeklyHours:  weekly.HoursNeeded,
		AvailableWeeklyHours: a.WeeklyWorkHours,
		IsOverCapacity:       required.GreaterThan(available),
		WeeklyHourGap:        decimal.Max(decimal.Zero, required.Sub(available)).RoundCeil(1).InexactFloat64(),
		WeeklyHourSurplus:    decimal.Max(decimal.Zero, available.Sub(required)).RoundFloor(1).InexactFloat64(),
	}
	if tm.Degenerate() {
		cr.Conditions = cr.Conditions.With(DegenerateTimeModel)
	}

	hours := yearly.exactHours()
	if hours.Abs().LessThan(minWorkedHours) {
		cr.Conditions = cr.Conditions.With(UndefinedRate)
		return cr
	}
	cr.EffectiveHourlyRate = yearly.exactProfit().Div(hours).Round(2).InexactFloat64()

	if a.DesiredHourlyRate != nil {
		meets := cr.EffectiveHourlyRate >= *a.DesiredHourlyRate
		cr.MeetsDesiredRate = &meets
	}
	return cr
}
