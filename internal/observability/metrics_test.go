package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Simplici0/bizcal/internal/planner"
)

func TestObservePlan_CountsModeAndConditions(t *testing.T) {
	m := NewMetrics("")

	m.ObservePlan(planner.Plan{Mode: planner.ModeGoal})
	m.ObservePlan(planner.Plan{
		Mode:       planner.ModeCapacity,
		Conditions: planner.Conditions{planner.InvalidMargin, planner.UndefinedRate},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansComputed.WithLabelValues("goal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansComputed.WithLabelValues("capacity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConditionsRaised.WithLabelValues("invalid_margin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConditionsRaised.WithLabelValues("undefined_rate")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := NewMetrics("test")
	m.ObservePlan(planner.Plan{Mode: planner.ModeVolume})

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `test_planner_plans_computed_total{mode="volume"} 1`)
}

func TestNewMetrics_RegistriesAreIndependent(t *testing.T) {
	a := NewMetrics("")
	b := NewMetrics("")

	a.ObservePlan(planner.Plan{Mode: planner.ModeGoal})

	assert.Equal(t, 0.0, testutil.ToFloat64(b.PlansComputed.WithLabelValues("goal")))
}
