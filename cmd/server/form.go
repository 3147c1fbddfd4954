package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/bizcal/internal/planner"
)

// parsePlanForm reads an assumptions document from form or query values. Range checks
// are left to the engine so negative inputs surface as conditions.
func parsePlanForm(r *http.Request) (planner.AssumptionsDoc, error) {
	doc := planner.AssumptionsDoc{
		Funnel: planner.FunnelDoc{Kind: strings.TrimSpace(r.FormValue("funnel_kind"))},
	}

	required := []struct {
		field string
		dst   *float64
	}{
		{"production_cost_per_unit", &doc.ProductionCostPerUnit},
		{"shipping_cost_per_unit", &doc.ShippingCostPerUnit},
		{"production_hours_per_unit", &doc.ProductionHoursPerUnit},
		{"weekly_work_hours", &doc.WeeklyWorkHours},
		{"yearly_profit_goal", &doc.YearlyProfitGoal},
		{"unit_price", &doc.UnitPrice},
	}
	for _, f := range required {
		v, err := parseFloat(r.FormValue(f.field), f.field)
		if err != nil {
			return doc, err
		}
		*f.dst = v
	}

	optional := []struct {
		field string
		dst   **float64
	}{
		{"target_annual_volume", &doc.TargetAnnualVolume},
		{"desired_hourly_rate", &doc.DesiredHourlyRate},
		{"annual_fixed_costs", &doc.AnnualFixedCosts},
	}
	for _, f := range optional {
		v, err := parseOptionalFloat(r.FormValue(f.field), f.field)
		if err != nil {
			return doc, err
		}
		*f.dst = v
	}

	funnel := []struct {
		field string
		dst   *float64
	}{
		{"leads_per_sale", &doc.Funnel.LeadsPerSale},
		{"minutes_per_lead", &doc.Funnel.MinutesPerLead},
		{"raw_leads_per_qualified_lead", &doc.Funnel.RawLeadsPerQualifiedLead},
		{"prospecting_minutes_per_raw_lead", &doc.Funnel.ProspectingMinutesPerRawLead},
		{"qualified_leads_per_sale", &doc.Funnel.QualifiedLeadsPerSale},
		{"qualification_minutes_per_qualified_lead", &doc.Funnel.QualificationMinutesPerQualifiedLead},
		{"closing_hours_per_sale", &doc.Funnel.ClosingHoursPerSale},
	}
	for _, f := range funnel {
		v, err := parseOptionalFloat(r.FormValue(f.field), f.field)
		if err != nil {
			return doc, err
		}
		if v != nil {
			*f.dst = *v
		}
	}

	return doc, nil
}

func parseFloat(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	return value, nil
}

func parseOptionalFloat(raw, field string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseFloat(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
