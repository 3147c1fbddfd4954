// Package planner turns a snapshot of business assumptions into per-period projections
// and goal-seeking recommendations. Every function in the package is pure: a computation
// pass takes a complete snapshot and returns a complete, independent result.
package planner

import (
	"math"

	"github.com/shopspring/decimal"
)

// Input magnitudes outside [MinPositiveInput, MaxInputValue] are rejected, zero aside.
// Inside the range every derived figure stays finite.
const (
	MaxInputValue    = 1e12
	MinPositiveInput = 1e-9
)

// BusinessAssumptions is an immutable snapshot of the operator's inputs.
type BusinessAssumptions struct {
	ProductionCostPerUnit  float64
	ShippingCostPerUnit    float64
	ProductionHoursPerUnit float64
	WeeklyWorkHours        float64
	YearlyProfitGoal       float64
	UnitPrice              float64

	// TargetAnnualVolume is only consulted in volume-driven mode. Nil means "derive it
	// from the profit goal at the current price".
	TargetAnnualVolume *float64
	// DesiredHourlyRate, when set, is compared against the effective hourly rate.
	DesiredHourlyRate *float64
	// AnnualFixedCosts, when set, enables the break-even volume.
	AnnualFixedCosts *float64

	Funnel Funnel
}

// Funnel is the time cost of selling one unit. Exactly one implementation is active per
// snapshot: SingleStageFunnel or TwoStageFunnel.
type Funnel interface {
	// Kind names the variant.
	Kind() string
	stages() funnelStages
	fields() map[string]float64
}

type funnelStages struct {
	prospecting    decimal.Decimal
	qualification  decimal.Decimal
	closing        decimal.Decimal
	rawLeads       decimal.Decimal
	qualifiedLeads decimal.Decimal
}

var minutesPerHour = decimal.NewFromInt(60)

// SingleStageFunnel models selling as one pass over leads.
type SingleStageFunnel struct {
	LeadsPerSale   float64
	MinutesPerLead float64
}

func (SingleStageFunnel) Kind() string { return FunnelSingle }

func (f SingleStageFunnel) stages() funnelStages {
	leads := dec(f.LeadsPerSale)
	return funnelStages{
		prospecting: leads.Mul(dec(f.MinutesPerLead)).Div(minutesPerHour),
		rawLeads:    leads,
	}
}

func (f SingleStageFunnel) fields() map[string]float64 {
	return map[string]float64{
		"leads_per_sale":   f.LeadsPerSale,
		"minutes_per_lead": f.MinutesPerLead,
	}
}

// TwoStageFunnel separates prospecting raw contacts from qualifying leads, and adds a
// fixed closing effort per sale.
type TwoStageFunnel struct {
	RawLeadsPerQualifiedLead             float64
	ProspectingMinutesPerRawLead         float64
	QualifiedLeadsPerSale                float64
	QualificationMinutesPerQualifiedLead float64
	ClosingHoursPerSale                  float64
}

func (TwoStageFunnel) Kind() string { return FunnelTwoStage }

func (f TwoStageFunnel) stages() funnelStages {
	qualified := dec(f.QualifiedLeadsPerSale)
	raw := dec(f.RawLeadsPerQualifiedLead).Mul(qualified)
	return funnelStages{
		prospecting:    raw.Mul(dec(f.ProspectingMinutesPerRawLead)).Div(minutesPerHour),
		qualification:  qualified.Mul(dec(f.QualificationMinutesPerQualifiedLead)).Div(minutesPerHour),
		closing:        dec(f.ClosingHoursPerSale),
		rawLeads:       raw,
		qualifiedLeads: qualified,
	}
}

func (f TwoStageFunnel) fields() map[string]float64 {
	return map[string]float64{
		"raw_leads_per_qualified_lead":             f.RawLeadsPerQualifiedLead,
		"prospecting_minutes_per_raw_lead":         f.ProspectingMinutesPerRawLead,
		"qualified_leads_per_sale":                 f.QualifiedLeadsPerSale,
		"qualification_minutes_per_qualified_lead": f.QualificationMinutesPerQualifiedLead,
		"closing_hours_per_sale":                   f.ClosingHoursPerSale,
	}
}

// Funnel kinds as they appear in input documents.
const (
	FunnelSingle   = "single"
	FunnelTwoStage = "two_stage"
)

// InputConditions reports OutOfRange when any field, funnel fields included, is not a
// finite number of usable magnitude.
func (a BusinessAssumptions) InputConditions() Conditions {
	vs := []float64{
		a.ProductionCostPerUnit,
		a.ShippingCostPerUnit,
		a.ProductionHoursPerUnit,
		a.WeeklyWorkHours,
		a.YearlyProfitGoal,
		a.UnitPrice,
	}
	for _, p := range []*float64{a.TargetAnnualVolume, a.DesiredHourlyRate, a.AnnualFixedCosts} {
		if p != nil {
			vs = append(vs, *p)
		}
	}
	if a.Funnel != nil {
		for _, v := range a.Funnel.fields() {
			vs = append(vs, v)
		}
	}

	for _, v := range vs {
		if !inRange(v) {
			return Conditions{OutOfRange}
		}
	}
	return nil
}

func inRange(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	m := math.Abs(v)
	return m == 0 || (m >= MinPositiveInput && m <= MaxInputValue)
}

// dec maps non-finite values to zero; callers reject those inputs before computing.
func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
