package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_GoalDrivenOverCapacity(t *testing.T) {
	a := handmadeGoods()
	metrics := project(t, a, GoalDriven{}, Options{})

	cr := Reconcile(a, ComputeTimeModel(a), metric(t, metrics, Weekly), metric(t, metrics, Yearly))

	assert.True(t, cr.IsOverCapacity)
	assert.Equal(t, 49.0, cr.RequiredWeeklyHours)
	assert.Equal(t, 40.0, cr.AvailableWeeklyHours)
	assert.Equal(t, 9.0, cr.WeeklyHourGap)
	assert.Zero(t, cr.WeeklyHourSurplus)
	// 60010 / 2471
	assert.Equal(t, 24.29, cr.EffectiveHourlyRate)
	assert.Nil(t, cr.MeetsDesiredRate)
	assert.Empty(t, cr.Conditions)
}

func TestReconcile_CapacityDrivenHasSurplus(t *testing.T) {
	a := handmadeGoods()
	metrics := project(t, a, CapacityDriven{}, Options{})

	cr := Reconcile(a, ComputeTimeModel(a), metric(t, metrics, Weekly), metric(t, metrics, Yearly))

	assert.False(t, cr.IsOverCapacity)
	assert.Zero(t, cr.WeeklyHourGap)
	assert.Equal(t, 1.5, cr.WeeklyHourSurplus)
}

func TestReconcile_UndefinedRateWithoutHours(t *testing.T) {
	a := handmadeGoods()
	a.ProductionHoursPerUnit = 0
	a.Funnel = SingleStageFunnel{}
	metrics := project(t, a, GoalDriven{}, Options{})

	cr := Reconcile(a, ComputeTimeModel(a), metric(t, metrics, Weekly), metric(t, metrics, Yearly))

	assert.Zero(t, cr.EffectiveHourlyRate)
	assert.True(t, cr.Conditions.Has(UndefinedRate))
	assert.True(t, cr.Conditions.Has(DegenerateTimeModel))
	assert.False(t, cr.IsOverCapacity)
}

func TestReconcile_DesiredHourlyRate(t *testing.T) {
	a := handmadeGoods()
	metrics := project(t, a, GoalDriven{}, Options{})
	weekly, yearly := metric(t, metrics, Weekly), metric(t, metrics, Yearly)

	a.DesiredHourlyRate = ptr(20)
	cr := Reconcile(a, ComputeTimeModel(a), weekly, yearly)
	require.NotNil(t, cr.MeetsDesiredRate)
	assert.True(t, *cr.MeetsDesiredRate)

	a.DesiredHourlyRate = ptr(50)
	cr = Reconcile(a, ComputeTimeModel(a), weekly, yearly)
	require.NotNil(t, cr.MeetsDesiredRate)
	assert.False(t, *cr.MeetsDesiredRate)
}

func TestReconcile_ComparesUnroundedHours(t *testing.T) {
	a := handmadeGoods()
	a.YearlyProfitGoal = 52
	a.ProductionHoursPerUnit = 37.5032
	metrics := project(t, a, GoalDriven{}, Options{})
	weekly := metric(t, metrics, Weekly)
	require.Equal(t, 1.0, weekly.Units)
	require.Equal(t, 40.0, weekly.HoursNeeded, "40.0032 hours display as 40.0")

	cr := Reconcile(a, ComputeTimeModel(a), weekly, metric(t, metrics, Yearly))

	assert.True(t, cr.IsOverCapacity)
	assert.Equal(t, 40.0, cr.RequiredWeeklyHours)
	assert.Equal(t, 0.1, cr.WeeklyHourGap, "a positive overrun rounds up to the next tenth")
	assert.Zero(t, cr.WeeklyHourSurplus)
}
