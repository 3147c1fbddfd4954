package seed

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/bizcal/internal/planner"
	"github.com/Simplici0/bizcal/internal/presets"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

func floatPtr(v float64) *float64 { return &v }

// Starters returns the presets every catalog ships with.
func Starters() []presets.Preset {
	return []presets.Preset{
		{
			Slug:        "getting-started",
			Name:        "Getting started",
			Description: "Blank costs, a 40 hour week and a $60k goal. Five half-hour conversations per sale.",
			Assumptions: planner.AssumptionsDoc{
				WeeklyWorkHours:  40,
				YearlyProfitGoal: 60000,
				UnitPrice:        100,
				Funnel:           planner.FunnelDoc{Kind: planner.FunnelSingle, LeadsPerSale: 5, MinutesPerLead: 30},
			},
		},
		{
			Slug:        "handmade-goods",
			Name:        "Handmade goods",
			Description: "$12 materials, $3 shipping and an hour of making per piece, sold at $100.",
			Assumptions: planner.AssumptionsDoc{
				ProductionCostPerUnit:  12,
				ShippingCostPerUnit:    3,
				ProductionHoursPerUnit: 1,
				WeeklyWorkHours:        40,
				YearlyProfitGoal:       60000,
				UnitPrice:              100,
				DesiredHourlyRate:      floatPtr(30),
				Funnel:                 planner.FunnelDoc{Kind: planner.FunnelSingle, LeadsPerSale: 5, MinutesPerLead: 30},
			},
		},
		{
			Slug:        "consulting",
			Name:        "Consulting engagements",
			Description: "Cold outreach qualified into discovery calls, with a closing meeting per engagement.",
			Assumptions: planner.AssumptionsDoc{
				ProductionCostPerUnit:  40,
				ProductionHoursPerUnit: 2,
				WeeklyWorkHours:        30,
				YearlyProfitGoal:       90000,
				UnitPrice:              900,
				AnnualFixedCosts:       floatPtr(6000),
				Funnel: planner.FunnelDoc{
					Kind:                                 planner.FunnelTwoStage,
					RawLeadsPerQualifiedLead:             4,
					ProspectingMinutesPerRawLead:         15,
					QualifiedLeadsPerSale:                3,
					QualificationMinutesPerQualifiedLead: 30,
					ClosingHoursPerSale:                  1,
				},
			},
		},
	}
}

// Run inserts the starter presets in an idempotent way. A starter whose stored
// assumptions drifted from the shipped ones is updated.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, p := range Starters() {
		if err := ensurePreset(tx, p, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensurePreset(tx *sql.Tx, p presets.Preset, stats *Stats) error {
	if err := p.Assumptions.Validate(); err != nil {
		return fmt.Errorf("validate preset %s: %w", p.Slug, err)
	}
	payload, err := json.Marshal(p.Assumptions)
	if err != nil {
		return fmt.Errorf("encode preset %s: %w", p.Slug, err)
	}

	var stored string
	err = tx.QueryRow(`SELECT assumptions_json FROM assumption_presets WHERE slug = ?`, p.Slug).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO assumption_presets (slug, name, description, assumptions_json, active)
			VALUES (?, ?, ?, ?, TRUE)
		`, p.Slug, p.Name, p.Description, string(payload)); err != nil {
			return fmt.Errorf("insert preset %s: %w", p.Slug, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check preset %s existence: %w", p.Slug, err)
	}

	if stored == string(payload) {
		return nil
	}

	if _, err := tx.Exec(`
		UPDATE assumption_presets
		SET
			name = ?,
			description = ?,
			assumptions_json = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE slug = ?
	`, p.Name, p.Description, string(payload), p.Slug); err != nil {
		return fmt.Errorf("update preset %s: %w", p.Slug, err)
	}
	stats.Updates++
	return nil
}
