package planner

import (
	"errors"
	"slices"
)

// Condition is a structural warning raised on a derived quantity. Conditions travel on
// results next to the numbers they qualify; a Condition is also an error so callers can
// test for it with errors.Is.
type Condition string

const (
	// InvalidMargin: the unit price does not cover the variable cost per unit.
	InvalidMargin Condition = "invalid_margin"
	// DegenerateTimeModel: no time cost is modeled, so hours per unit is zero.
	DegenerateTimeModel Condition = "degenerate_time_model"
	// UndefinedRate: no annual hours are worked, so an hourly rate cannot be derived.
	UndefinedRate Condition = "undefined_rate"
	// NegativeInput: a cost, time or hours field was supplied negative.
	NegativeInput Condition = "negative_input"
	// NoCapacity: weekly work hours are zero, so there is no capacity to plan against.
	NoCapacity Condition = "no_capacity"
	// OutOfRange: an input is not finite, or its magnitude is outside the supported range.
	OutOfRange Condition = "out_of_range"
)

func (c Condition) Error() string {
	switch c {
	case InvalidMargin:
		return "unit price does not cover variable cost"
	case DegenerateTimeModel:
		return "total hours per unit is zero"
	case UndefinedRate:
		return "effective hourly rate is undefined without worked hours"
	case NegativeInput:
		return "input must not be negative"
	case NoCapacity:
		return "weekly work hours must be greater than zero"
	case OutOfRange:
		return "input is outside the supported range"
	default:
		return string(c)
	}
}

// Conditions is an ordered, duplicate-free set of conditions.
type Conditions []Condition

// Has reports whether c is present.
func (cs Conditions) Has(c Condition) bool {
	return slices.Contains(cs, c)
}

// Reliable reports whether no condition was raised.
func (cs Conditions) Reliable() bool {
	return len(cs) == 0
}

// With returns cs plus the given conditions, skipping ones already present.
func (cs Conditions) With(more ...Condition) Conditions {
	out := slices.Clone(cs)
	for _, c := range more {
		if !out.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Err joins the conditions into a single error, or returns nil when there are none.
func (cs Conditions) Err() error {
	if len(cs) == 0 {
		return nil
	}
	errs := make([]error, len(cs))
	for i, c := range cs {
		errs[i] = c
	}
	return errors.Join(errs...)
}
