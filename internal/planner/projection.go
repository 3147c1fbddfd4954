package planner

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ModeName identifies a projection mode in documents and requests.
type ModeName string

const (
	ModeGoal     ModeName = "goal"
	ModeCapacity ModeName = "capacity"
	ModeVolume   ModeName = "volume"
)

// Mode decides how many units a period holds. The rest of a PeriodMetric scales from
// that count the same way in every mode.
type Mode interface {
	Name() ModeName
	units(in periodInput) (decimal.Decimal, Conditions)
}

// GoalDriven sizes each period to the units required to meet the profit goal. Counts
// round up so the goal is met or exceeded.
type GoalDriven struct{}

// CapacityDriven sizes each period to the units that fit in the available hours. Counts
// round down so hours used never exceed hours available.
type CapacityDriven struct{}

// VolumeDriven spreads an annual unit volume evenly over each period, unrounded.
type VolumeDriven struct{}

func (GoalDriven) Name() ModeName     { return ModeGoal }
func (CapacityDriven) Name() ModeName { return ModeCapacity }
func (VolumeDriven) Name() ModeName   { return ModeVolume }

// ParseMode maps a mode name to its Mode. Empty means goal-driven.
func ParseMode(raw string) (Mode, error) {
	switch ModeName(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeGoal:
		return GoalDriven{}, nil
	case ModeCapacity:
		return CapacityDriven{}, nil
	case ModeVolume:
		return VolumeDriven{}, nil
	default:
		return nil, fmt.Errorf("unknown projection mode %q", raw)
	}
}

// PeriodMetric is one row of a projection.
type PeriodMetric struct {
	Period               Period     `json:"period"`
	Factor               float64    `json:"factor"`
	Units                float64    `json:"units"`
	LeadsNeeded          float64    `json:"leads_needed"`
	QualifiedLeadsNeeded float64    `json:"qualified_leads_needed"`
	HoursNeeded          float64    `json:"hours_needed"`
	CapacityHours        float64    `json:"capacity_hours"`
	Revenue              float64    `json:"revenue"`
	Profit               float64    `json:"profit"`
	TargetProfit         float64    `json:"target_profit"`
	Conditions           Conditions `json:"conditions,omitempty"`

	// Unrounded figures for comparisons. exact is false on hand-built rows.
	hours  decimal.Decimal
	profit decimal.Decimal
	exact  bool
}

func (m PeriodMetric) exactHours() decimal.Decimal {
	if m.exact {
		return m.hours
	}
	return dec(m.HoursNeeded)
}

func (m PeriodMetric) exactProfit() decimal.Decimal {
	if m.exact {
		return m.profit
	}
	return dec(m.Profit)
}

type periodInput struct {
	factor       decimal.Decimal
	goal         decimal.Decimal
	weeklyHours  decimal.Decimal
	unitProfit   decimal.Decimal
	totalHours   decimal.Decimal
	annualVolume decimal.Decimal

	economics Conditions
	time      Conditions
	volume    Conditions
}

var weeksPerYear = decimal.NewFromInt(52)

func (GoalDriven) units(in periodInput) (decimal.Decimal, Conditions) {
	if in.economics.Has(InvalidMargin) {
		return decimal.Zero, Conditions{InvalidMargin}
	}
	return in.goal.Div(in.factor.Mul(in.unitProfit)).Ceil(), nil
}

func (CapacityDriven) units(in periodInput) (decimal.Decimal, Conditions) {
	var cs Conditions
	if in.economics.Has(InvalidMargin) {
		cs = cs.With(InvalidMargin)
	}
	if in.time.Has(DegenerateTimeModel) {
		return decimal.Zero, cs.With(DegenerateTimeModel)
	}
	if !in.weeklyHours.IsPositive() {
		return decimal.Zero, cs.With(NoCapacity)
	}
	return in.weeklyHours.Mul(weeksPerYear).Div(in.factor.Mul(in.totalHours)).Floor(), cs
}

func (VolumeDriven) units(in periodInput) (decimal.Decimal, Conditions) {
	cs := in.volume
	if in.economics.Has(InvalidMargin) {
		cs = cs.With(InvalidMargin)
	}
	return in.annualVolume.Div(in.factor), cs
}

// Project expands per-unit economics and time into one metric per period, ordered from
// Daily to Yearly. Every row is computed from scratch; nothing carries between rows.
func Project(a BusinessAssumptions, ue UnitEconomics, tm TimeModel, mode Mode, opts Options) []PeriodMetric {
	if mode == nil {
		mode = GoalDriven{}
	}

	in := periodInput{
		goal:        dec(a.YearlyProfitGoal),
		weeklyHours: dec(a.WeeklyWorkHours),
		unitProfit:  ue.profit,
		totalHours:  tm.total,
		economics:   ue.Conditions,
		time:        tm.Conditions,
	}
	if _, ok := mode.(VolumeDriven); ok {
		in.annualVolume, in.volume = annualVolume(a, ue)
	}

	price := dec(a.UnitPrice)
	rawLeads := tm.rawLeads
	qualifiedLeads := tm.qualifiedLeads

	metrics := make([]PeriodMetric, 0, len(Periods))
	for _, p := range Periods {
		factor := opts.Factor(p)
		in.factor = dec(factor)

		units, cs := mode.units(in)
		hours := units.Mul(in.totalHours)
		profit := units.Mul(in.unitProfit)

		m := PeriodMetric{
			Period:               p,
			Factor:               factor,
			Units:                units.InexactFloat64(),
			LeadsNeeded:          roundTenth(units.Mul(rawLeads)),
			QualifiedLeadsNeeded: roundTenth(units.Mul(qualifiedLeads)),
			HoursNeeded:          roundTenth(hours),
			Revenue:              roundMoney(units.Mul(price)),
			Profit:               roundMoney(profit),
			TargetProfit:         roundMoney(in.goal.Div(in.factor)),
			Conditions:           cs,
			hours:                hours,
			profit:               profit,
			exact:                true,
		}
		if in.weeklyHours.IsPositive() {
			m.CapacityHours = roundTenth(in.weeklyHours.Mul(weeksPerYear).Div(in.factor))
		}
		metrics = append(metrics, m)
	}
	return metrics
}

// MetricFor returns the row for p, or false when the projection has none.
func MetricFor(metrics []PeriodMetric, p Period) (PeriodMetric, bool) {
	for _, m := range metrics {
		if m.Period == p {
			return m, true
		}
	}
	return PeriodMetric{}, false
}

func annualVolume(a BusinessAssumptions, ue UnitEconomics) (decimal.Decimal, Conditions) {
	if a.TargetAnnualVolume != nil {
		return dec(*a.TargetAnnualVolume), nil
	}
	vs := SolveRequiredVolume(a, ue)
	return vs.units, vs.Conditions
}
