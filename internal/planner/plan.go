package planner

import "github.com/shopspring/decimal"

// Recommendation summarizes what the operator would have to change to hit the goal.
type Recommendation struct {
	RecommendedPrice        decimal.Decimal `json:"recommended_price"`
	RequiredProfitPerUnit   decimal.Decimal `json:"required_profit_per_unit"`
	MaxAnnualUnits          float64         `json:"max_annual_units"`
	RecommendedAnnualVolume float64         `json:"recommended_annual_volume"`
	BreakEvenUnits          *float64        `json:"break_even_units,omitempty"`
	IsOverCapacity          bool            `json:"is_over_capacity"`
	RequiredWeeklyHours     float64         `json:"required_weekly_hours"`
	AvailableWeeklyHours    float64         `json:"available_weekly_hours"`
	WeeklyHourGap           float64         `json:"weekly_hour_gap"`
	WeeklyHourSurplus       float64         `json:"weekly_hour_surplus"`
	EffectiveHourlyRate     float64         `json:"effective_hourly_rate"`
	MeetsDesiredRate        *bool           `json:"meets_desired_rate,omitempty"`
	Conditions              Conditions      `json:"conditions,omitempty"`
}

// PriceBounds is a sensible range for a price lever: from the variable cost rounded up
// to three times the current price.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Plan is the full result of one computation pass.
type Plan struct {
	Mode           ModeName       `json:"mode"`
	DailyBasis     DailyBasis     `json:"daily_basis"`
	Economics      UnitEconomics  `json:"economics"`
	Time           TimeModel      `json:"time"`
	Projection     []PeriodMetric `json:"projection"`
	Recommendation Recommendation `json:"recommendation"`
	PriceBounds    PriceBounds    `json:"price_bounds"`
	Conditions     Conditions     `json:"conditions,omitempty"`

	Assumptions BusinessAssumptions `json:"-"`
}

// Compute runs every model over one snapshot. A snapshot with an input outside the
// supported range is not modeled: the plan carries OutOfRange and zero rows.
func Compute(a BusinessAssumptions, mode Mode, opts Options) Plan {
	if mode == nil {
		mode = GoalDriven{}
	}
	if opts.DailyBasis == 0 {
		opts.DailyBasis = WorkDays
	}
	if cs := a.InputConditions(); !cs.Reliable() {
		return unmodeled(a, mode, opts, cs)
	}

	ue := ComputeUnitEconomics(a)
	tm := ComputeTimeModel(a)
	projection := Project(a, ue, tm, mode, opts)
	rec := Recommend(a, ue, tm, projection)

	cs := ue.Conditions.With(tm.Conditions...)
	for _, m := range projection {
		cs = cs.With(m.Conditions...)
	}
	cs = cs.With(rec.Conditions...)

	return Plan{
		Mode:           mode.Name(),
		DailyBasis:     opts.DailyBasis,
		Economics:      ue,
		Time:           tm,
		Projection:     projection,
		Recommendation: rec,
		PriceBounds:    priceBounds(a, ue),
		Conditions:     cs,
		Assumptions:    a,
	}
}

func unmodeled(a BusinessAssumptions, mode Mode, opts Options, cs Conditions) Plan {
	projection := make([]PeriodMetric, 0, len(Periods))
	for _, p := range Periods {
		projection = append(projection, PeriodMetric{Period: p, Factor: opts.Factor(p), Conditions: cs})
	}
	return Plan{
		Mode:           mode.Name(),
		DailyBasis:     opts.DailyBasis,
		Economics:      UnitEconomics{Conditions: cs},
		Time:           TimeModel{Conditions: cs},
		Projection:     projection,
		Recommendation: Recommendation{Conditions: cs},
		Conditions:     cs,
		Assumptions:    a,
	}
}

// Recommend combines the goal solvers with a capacity reconciliation of the projection.
func Recommend(a BusinessAssumptions, ue UnitEconomics, tm TimeModel, projection []PeriodMetric) Recommendation {
	weekly, _ := MetricFor(projection, Weekly)
	yearly, _ := MetricFor(projection, Yearly)

	price := SolveRecommendedPrice(a, tm)
	volume := SolveRequiredVolume(a, ue)
	capacity := Reconcile(a, tm, weekly, yearly)

	rec := Recommendation{
		RecommendedPrice:        price.RecommendedPrice,
		RequiredProfitPerUnit:   price.RequiredProfitPerUnit,
		MaxAnnualUnits:          price.MaxAnnualUnits,
		RecommendedAnnualVolume: volume.AnnualUnits,
		IsOverCapacity:          capacity.IsOverCapacity,
		RequiredWeeklyHours:     capacity.RequiredWeeklyHours,
		AvailableWeeklyHours:    capacity.AvailableWeeklyHours,
		WeeklyHourGap:           capacity.WeeklyHourGap,
		WeeklyHourSurplus:       capacity.WeeklyHourSurplus,
		EffectiveHourlyRate:     capacity.EffectiveHourlyRate,
		MeetsDesiredRate:        capacity.MeetsDesiredRate,
	}
	rec.Conditions = price.Conditions.With(volume.Conditions...).With(capacity.Conditions...)

	if a.AnnualFixedCosts != nil {
		be := SolveBreakEvenVolume(*a.AnnualFixedCosts, ue)
		if be.Conditions.Reliable() {
			units := be.AnnualUnits
			rec.BreakEvenUnits = &units
		}
		rec.Conditions = rec.Conditions.With(be.Conditions...)
	}
	return rec
}

func priceBounds(a BusinessAssumptions, ue UnitEconomics) PriceBounds {
	lo := ue.variable.Ceil()
	hi := decimal.Max(lo, dec(a.UnitPrice).Mul(decimal.NewFromInt(3)))
	return PriceBounds{Min: lo.InexactFloat64(), Max: hi.InexactFloat64()}
}
