package planner

import "github.com/shopspring/decimal"

// TimeModel is the labor needed to produce and sell one unit, split by stage.
type TimeModel struct {
	ProductionHours       float64    `json:"production_hours"`
	ProspectingHours      float64    `json:"prospecting_hours"`
	QualificationHours    float64    `json:"qualification_hours"`
	ClosingHours          float64    `json:"closing_hours"`
	TotalHoursPerUnit     float64    `json:"total_hours_per_unit"`
	SalesHoursPerUnit     float64    `json:"sales_hours_per_unit"`
	SalesTimePercentage   float64    `json:"sales_time_percentage"`
	RawLeadsPerSale       float64    `json:"raw_leads_per_sale"`
	QualifiedLeadsPerSale float64    `json:"qualified_leads_per_sale"`
	Conditions            Conditions `json:"conditions,omitempty"`

	total          decimal.Decimal
	rawLeads       decimal.Decimal
	qualifiedLeads decimal.Decimal
}

// Degenerate reports whether no time cost is modeled.
func (tm TimeModel) Degenerate() bool {
	return tm.Conditions.Has(DegenerateTimeModel)
}

var hundred = decimal.NewFromInt(100)

// ComputeTimeModel derives the hours per unit from production time and the funnel.
// A nil funnel contributes no selling time. DegenerateTimeModel is raised when the total
// is not positive, and the sales share is then left at zero.
func ComputeTimeModel(a BusinessAssumptions) TimeModel {
	var st funnelStages
	if a.Funnel != nil {
		st = a.Funnel.stages()
	}

	production := dec(a.ProductionHoursPerUnit)
	total := production.Add(st.prospecting).Add(st.qualification).Add(st.closing)
	sales := total.Sub(production)

	tm := TimeModel{
		ProductionHours:       production.InexactFloat64(),
		ProspectingHours:      st.prospecting.InexactFloat64(),
		QualificationHours:    st.qualification.InexactFloat64(),
		ClosingHours:          st.closing.InexactFloat64(),
		TotalHoursPerUnit:     total.InexactFloat64(),
		SalesHoursPerUnit:     sales.InexactFloat64(),
		RawLeadsPerSale:       st.rawLeads.InexactFloat64(),
		QualifiedLeadsPerSale: st.qualifiedLeads.InexactFloat64(),
		total:                 total,
		rawLeads:              st.rawLeads,
		qualifiedLeads:        st.qualifiedLeads,
	}

	if !total.IsPositive() {
		tm.Conditions = tm.Conditions.With(DegenerateTimeModel)
		return tm
	}
	tm.SalesTimePercentage = sales.Div(total).Mul(hundred).InexactFloat64()
	return tm
}
