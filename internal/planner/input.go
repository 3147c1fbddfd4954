package planner

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

var (
	ErrUnknownFunnel = errors.New("unknown funnel kind")
	ErrMixedFunnel   = errors.New("funnel mixes single-stage and two-stage fields")
	ErrNotFinite     = errors.New("input must be a finite number")
)

// AssumptionsDoc is the wire form of BusinessAssumptions, shared by the JSON API, YAML
// files and the preset catalog.
type AssumptionsDoc struct {
	ProductionCostPerUnit  float64   `json:"production_cost_per_unit" yaml:"production_cost_per_unit"`
	ShippingCostPerUnit    float64   `json:"shipping_cost_per_unit" yaml:"shipping_cost_per_unit"`
	ProductionHoursPerUnit float64   `json:"production_hours_per_unit" yaml:"production_hours_per_unit"`
	WeeklyWorkHours        float64   `json:"weekly_work_hours" yaml:"weekly_work_hours"`
	YearlyProfitGoal       float64   `json:"yearly_profit_goal" yaml:"yearly_profit_goal"`
	UnitPrice              float64   `json:"unit_price" yaml:"unit_price"`
	TargetAnnualVolume     *float64  `json:"target_annual_volume,omitempty" yaml:"target_annual_volume,omitempty"`
	DesiredHourlyRate      *float64  `json:"desired_hourly_rate,omitempty" yaml:"desired_hourly_rate,omitempty"`
	AnnualFixedCosts       *float64  `json:"annual_fixed_costs,omitempty" yaml:"annual_fixed_costs,omitempty"`
	Funnel                 FunnelDoc `json:"funnel" yaml:"funnel"`
}

// FunnelDoc carries either variant of the funnel. Kind selects which fields apply; when
// Kind is empty it is inferred from which fields are set.
type FunnelDoc struct {
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	LeadsPerSale   float64 `json:"leads_per_sale,omitempty" yaml:"leads_per_sale,omitempty"`
	MinutesPerLead float64 `json:"minutes_per_lead,omitempty" yaml:"minutes_per_lead,omitempty"`

	RawLeadsPerQualifiedLead             float64 `json:"raw_leads_per_qualified_lead,omitempty" yaml:"raw_leads_per_qualified_lead,omitempty"`
	ProspectingMinutesPerRawLead         float64 `json:"prospecting_minutes_per_raw_lead,omitempty" yaml:"prospecting_minutes_per_raw_lead,omitempty"`
	QualifiedLeadsPerSale                float64 `json:"qualified_leads_per_sale,omitempty" yaml:"qualified_leads_per_sale,omitempty"`
	QualificationMinutesPerQualifiedLead float64 `json:"qualification_minutes_per_qualified_lead,omitempty" yaml:"qualification_minutes_per_qualified_lead,omitempty"`
	ClosingHoursPerSale                  float64 `json:"closing_hours_per_sale,omitempty" yaml:"closing_hours_per_sale,omitempty"`
}

func (f FunnelDoc) hasSingle() bool {
	return f.LeadsPerSale != 0 || f.MinutesPerLead != 0
}

func (f FunnelDoc) hasTwoStage() bool {
	return f.RawLeadsPerQualifiedLead != 0 || f.ProspectingMinutesPerRawLead != 0 ||
		f.QualifiedLeadsPerSale != 0 || f.QualificationMinutesPerQualifiedLead != 0 ||
		f.ClosingHoursPerSale != 0
}

// Resolve returns the active funnel variant.
func (f FunnelDoc) Resolve() (Funnel, error) {
	kind := strings.ToLower(strings.TrimSpace(f.Kind))
	if kind == "" {
		kind = FunnelSingle
		if f.hasTwoStage() {
			kind = FunnelTwoStage
		}
	}

	switch kind {
	case FunnelSingle:
		if f.hasTwoStage() {
			return nil, ErrMixedFunnel
		}
		return SingleStageFunnel{LeadsPerSale: f.LeadsPerSale, MinutesPerLead: f.MinutesPerLead}, nil
	case FunnelTwoStage:
		if f.hasSingle() {
			return nil, ErrMixedFunnel
		}
		return TwoStageFunnel{
			RawLeadsPerQualifiedLead:             f.RawLeadsPerQualifiedLead,
			ProspectingMinutesPerRawLead:         f.ProspectingMinutesPerRawLead,
			QualifiedLeadsPerSale:                f.QualifiedLeadsPerSale,
			QualificationMinutesPerQualifiedLead: f.QualificationMinutesPerQualifiedLead,
			ClosingHoursPerSale:                  f.ClosingHoursPerSale,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunnel, f.Kind)
	}
}

type namedValue struct {
	name  string
	value float64
}

func (d AssumptionsDoc) values() []namedValue {
	vs := []namedValue{
		{"production_cost_per_unit", d.ProductionCostPerUnit},
		{"shipping_cost_per_unit", d.ShippingCostPerUnit},
		{"production_hours_per_unit", d.ProductionHoursPerUnit},
		{"weekly_work_hours", d.WeeklyWorkHours},
		{"yearly_profit_goal", d.YearlyProfitGoal},
		{"unit_price", d.UnitPrice},
	}
	if d.TargetAnnualVolume != nil {
		vs = append(vs, namedValue{"target_annual_volume", *d.TargetAnnualVolume})
	}
	if d.DesiredHourlyRate != nil {
		vs = append(vs, namedValue{"desired_hourly_rate", *d.DesiredHourlyRate})
	}
	if d.AnnualFixedCosts != nil {
		vs = append(vs, namedValue{"annual_fixed_costs", *d.AnnualFixedCosts})
	}
	return vs
}

// Validate rejects non-finite, negative and out-of-range fields. A negative field yields
// an error that matches NegativeInput under errors.Is, and a field beyond MaxInputValue
// or below MinPositiveInput one that matches OutOfRange.
func (d AssumptionsDoc) Validate() error {
	funnel, err := d.Funnel.Resolve()
	if err != nil {
		return err
	}

	vs := d.values()
	fields := funnel.fields()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		vs = append(vs, namedValue{"funnel." + k, fields[k]})
	}
	for _, v := range vs {
		if err := checkInput(v.value); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}
	return nil
}

func checkInput(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return ErrNotFinite
	case v < 0:
		return NegativeInput
	case !inRange(v):
		return OutOfRange
	}
	return nil
}

// Assumptions validates the document and converts it into an engine snapshot.
func (d AssumptionsDoc) Assumptions() (BusinessAssumptions, error) {
	if err := d.Validate(); err != nil {
		return BusinessAssumptions{}, err
	}
	funnel, err := d.Funnel.Resolve()
	if err != nil {
		return BusinessAssumptions{}, err
	}

	return BusinessAssumptions{
		ProductionCostPerUnit:  d.ProductionCostPerUnit,
		ShippingCostPerUnit:    d.ShippingCostPerUnit,
		ProductionHoursPerUnit: d.ProductionHoursPerUnit,
		WeeklyWorkHours:        d.WeeklyWorkHours,
		YearlyProfitGoal:       d.YearlyProfitGoal,
		UnitPrice:              d.UnitPrice,
		TargetAnnualVolume:     copyFloat(d.TargetAnnualVolume),
		DesiredHourlyRate:      copyFloat(d.DesiredHourlyRate),
		AnnualFixedCosts:       copyFloat(d.AnnualFixedCosts),
		Funnel:                 funnel,
	}, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
