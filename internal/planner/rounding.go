package planner

import "github.com/shopspring/decimal"

// Display rounding. Rounding is half away from zero.

func roundMoney(d decimal.Decimal) float64 {
	return d.Round(0).InexactFloat64()
}

func roundTenth(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}
