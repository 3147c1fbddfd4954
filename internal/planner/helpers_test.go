package planner

func ptr(v float64) *float64 { return &v }

// handmadeGoods is the reference snapshot: $12 materials, $3 shipping, one hour to make,
// five 30-minute leads per sale, 40 hours a week, $60k goal, $100 price.
func handmadeGoods() BusinessAssumptions {
	return BusinessAssumptions{
		ProductionCostPerUnit:  12,
		ShippingCostPerUnit:    3,
		ProductionHoursPerUnit: 1,
		WeeklyWorkHours:        40,
		YearlyProfitGoal:       60000,
		UnitPrice:              100,
		Funnel:                 SingleStageFunnel{LeadsPerSale: 5, MinutesPerLead: 30},
	}
}

func consulting() BusinessAssumptions {
	return BusinessAssumptions{
		ProductionCostPerUnit:  40,
		ProductionHoursPerUnit: 2,
		WeeklyWorkHours:        30,
		YearlyProfitGoal:       90000,
		UnitPrice:              900,
		Funnel: TwoStageFunnel{
			RawLeadsPerQualifiedLead:             4,
			ProspectingMinutesPerRawLead:         15,
			QualifiedLeadsPerSale:                3,
			QualificationMinutesPerQualifiedLead: 30,
			ClosingHoursPerSale:                  1,
		},
	}
}
