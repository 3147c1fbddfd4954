package main

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Simplici0/bizcal/internal/planner"
)

func twoStageForm() url.Values {
	form := url.Values{}
	form.Set("production_cost_per_unit", "40")
	form.Set("shipping_cost_per_unit", "0")
	form.Set("production_hours_per_unit", "2")
	form.Set("weekly_work_hours", "30")
	form.Set("yearly_profit_goal", "90000")
	form.Set("unit_price", "900")
	form.Set("annual_fixed_costs", "6000")
	form.Set("funnel_kind", "two_stage")
	form.Set("raw_leads_per_qualified_lead", "4")
	form.Set("prospecting_minutes_per_raw_lead", "15")
	form.Set("qualified_leads_per_sale", "3")
	form.Set("qualification_minutes_per_qualified_lead", "30")
	form.Set("closing_hours_per_sale", "1")
	return form
}

func TestParsePlanForm_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/plan/text", nil)
	req.Form = twoStageForm()

	doc, err := parsePlanForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.UnitPrice != 900 || doc.WeeklyWorkHours != 30 {
		t.Fatalf("unexpected core values: %+v", doc)
	}
	if doc.AnnualFixedCosts == nil || *doc.AnnualFixedCosts != 6000 {
		t.Fatalf("expected fixed costs 6000, got %v", doc.AnnualFixedCosts)
	}
	if doc.TargetAnnualVolume != nil || doc.DesiredHourlyRate != nil {
		t.Fatalf("expected unset optionals to stay nil")
	}
	if doc.Funnel.Kind != planner.FunnelTwoStage || doc.Funnel.ClosingHoursPerSale != 1 {
		t.Fatalf("unexpected funnel: %+v", doc.Funnel)
	}
	if _, err := doc.Assumptions(); err != nil {
		t.Fatalf("expected parsed form to validate: %v", err)
	}
}

func TestParsePlanForm_InvalidNumbers(t *testing.T) {
	form := twoStageForm()
	form.Set("unit_price", "abc")

	req := httptest.NewRequest("POST", "/plan/text", nil)
	req.Form = form

	if _, err := parsePlanForm(req); err == nil {
		t.Fatalf("expected numeric validation error")
	}
}

func TestParsePlanForm_InvalidOptional(t *testing.T) {
	form := twoStageForm()
	form.Set("desired_hourly_rate", "lots")

	req := httptest.NewRequest("POST", "/plan/text", nil)
	req.Form = form

	if _, err := parsePlanForm(req); err == nil {
		t.Fatalf("expected optional field validation error")
	}
}

func TestParsePlanForm_NegativeLeftToEngine(t *testing.T) {
	form := twoStageForm()
	form.Set("weekly_work_hours", "-5")

	req := httptest.NewRequest("POST", "/plan/text", nil)
	req.Form = form

	doc, err := parsePlanForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := doc.Assumptions(); err == nil {
		t.Fatalf("expected negative weekly hours to be rejected")
	}
}
