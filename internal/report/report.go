// Package report renders a computed plan for people and for downstream advisors.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/bizcal/internal/planner"
)

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.", v)
}

func cents(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func tenth(v float64) string {
	return humanize.FormatFloat("#,###.#", v)
}

func units(v float64) string {
	if v == float64(int64(v)) {
		return humanize.Comma(int64(v))
	}
	return humanize.FormatFloat("#,###.##", v)
}

var warnings = map[planner.Condition]string{
	planner.InvalidMargin:       "Price does not cover variable cost; no unit count can reach the goal.",
	planner.DegenerateTimeModel: "Each sale takes no time, so capacity does not limit volume.",
	planner.UndefinedRate:       "No hours are planned, so the effective hourly rate is undefined.",
	planner.NoCapacity:          "No weekly hours are available to produce or sell.",
	planner.NegativeInput:       "An input is negative.",
	planner.OutOfRange:          "An input is outside the supported range, so the plan was not computed.",
}

// priceReliable reports whether the recommended price was actually solved. Without hours
// per sale or weekly hours the solver leaves it at the variable cost.
func priceReliable(cs planner.Conditions) bool {
	return !cs.Has(planner.NoCapacity) && !cs.Has(planner.DegenerateTimeModel) && !cs.Has(planner.OutOfRange)
}

// Text renders the plan as a plain-text breakdown.
func Text(plan planner.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "BizCal plan (%s mode)\n\n", plan.Mode)
	fmt.Fprintf(&b, "Profit per unit:     %s\n", cents(plan.Economics.UnitProfit))
	fmt.Fprintf(&b, "Hours per sale:      %s\n", humanize.FormatFloat("#,###.##", plan.Time.TotalHoursPerUnit))
	fmt.Fprintf(&b, "Time spent selling:  %s%%\n\n", tenth(plan.Time.SalesTimePercentage))

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tUnits\tLeads\tHours\tRevenue\tProfit\tTarget\t")
	for _, m := range plan.Projection {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			m.Period,
			units(m.Units),
			tenth(m.LeadsNeeded),
			tenth(m.HoursNeeded),
			money(m.Revenue),
			money(m.Profit),
			money(m.TargetProfit),
		)
	}
	tw.Flush()

	rec := plan.Recommendation
	b.WriteString("\nRecommendations\n")
	switch {
	case !priceReliable(plan.Conditions):
		b.WriteString("- No reliable price can be recommended for these inputs.\n")
	case rec.RecommendedPrice.IsPositive():
		fmt.Fprintf(&b, "- Price at %s to reach the goal within %s hours a week.\n",
			cents(rec.RecommendedPrice.InexactFloat64()), tenth(rec.AvailableWeeklyHours))
	}
	if rec.RecommendedAnnualVolume > 0 {
		fmt.Fprintf(&b, "- Sell %s units a year at the current price.\n", units(rec.RecommendedAnnualVolume))
	}
	if rec.BreakEvenUnits != nil {
		fmt.Fprintf(&b, "- Break even on fixed costs after %s units.\n", units(*rec.BreakEvenUnits))
	}
	if rec.IsOverCapacity {
		fmt.Fprintf(&b, "- The plan needs %s hours a week, %s more than available.\n",
			tenth(rec.RequiredWeeklyHours), tenth(rec.WeeklyHourGap))
	} else {
		fmt.Fprintf(&b, "- The plan fits with %s hours a week to spare.\n", tenth(rec.WeeklyHourSurplus))
	}
	if !plan.Conditions.Has(planner.UndefinedRate) {
		fmt.Fprintf(&b, "- Effective hourly rate: %s.\n", cents(rec.EffectiveHourlyRate))
	}
	if rec.MeetsDesiredRate != nil && plan.Assumptions.DesiredHourlyRate != nil {
		verb := "meets"
		if !*rec.MeetsDesiredRate {
			verb = "falls short of"
		}
		fmt.Fprintf(&b, "- That %s your desired %s an hour.\n", verb, cents(*plan.Assumptions.DesiredHourlyRate))
	}

	if len(plan.Conditions) > 0 {
		b.WriteString("\nWarnings\n")
		for _, c := range plan.Conditions {
			msg, ok := warnings[c]
			if !ok {
				msg = string(c)
			}
			fmt.Fprintf(&b, "- %s\n", msg)
		}
	}

	return b.String()
}
