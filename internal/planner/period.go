package planner

import (
	"fmt"
	"strings"
)

// Period is a calendar window a plan is expressed in.
type Period string

const (
	Daily     Period = "Daily"
	Weekly    Period = "Weekly"
	Monthly   Period = "Monthly"
	Quarterly Period = "Quarterly"
	Yearly    Period = "Yearly"
)

// Periods lists every period from shortest to longest.
var Periods = []Period{Daily, Weekly, Monthly, Quarterly, Yearly}

// DailyBasis is the number of days per year a daily figure is spread over.
type DailyBasis int

const (
	// WorkDays spreads the year over five working days a week.
	WorkDays DailyBasis = 260
	// CalendarDays spreads the year over every day.
	CalendarDays DailyBasis = 365
)

// ParseDailyBasis accepts "260", "workdays", "365" or "calendar". Empty means WorkDays.
func ParseDailyBasis(raw string) (DailyBasis, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "260", "workdays", "work_days":
		return WorkDays, nil
	case "365", "calendar", "calendar_days":
		return CalendarDays, nil
	default:
		return 0, fmt.Errorf("unknown daily basis %q", raw)
	}
}

// Options tunes a projection.
type Options struct {
	DailyBasis DailyBasis
}

// Factor returns how many times p fits in a year.
func (o Options) Factor(p Period) float64 {
	switch p {
	case Daily:
		if o.DailyBasis == 0 {
			return float64(WorkDays)
		}
		return float64(o.DailyBasis)
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	default:
		return 1
	}
}
