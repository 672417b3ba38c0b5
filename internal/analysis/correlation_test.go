package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oizumi98/kaimono-api/internal/analysis"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

func TestCorrelate_InsufficientData(t *testing.T) {
	day := date(2025, 7, 1)

	records := []*purchase.Purchase{
		record(100, "food", purchase.DecisionPlanned, 1, nil, day),
		record(200, "food", purchase.DecisionPlanned, 2, nil, day),
		record(300, "food", purchase.DecisionImpulse, 3, nil, day),
		record(400, "food", purchase.DecisionImpulse, 4, nil, day),
	}

	correlations := analysis.Correlate(records)
	require.Len(t, correlations, 2)

	for _, pair := range []string{analysis.PairAmountSatisfaction, analysis.PairPlanningSatisfaction} {
		c, ok := correlations[pair]
		require.True(t, ok)
		assert.Zero(t, c.Coefficient)
		assert.Contains(t, c.Description, "Not enough data")
	}
}

func TestCorrelate_PerfectPositive(t *testing.T) {
	day := date(2025, 7, 1)

	var records []*purchase.Purchase
	for i := 0; i < 6; i++ {
		// Amount grows linearly with satisfaction.
		records = append(records, record(int64(100*(i+1)), "food", purchase.DecisionImpulse, i, nil, day))
	}

	correlations := analysis.Correlate(records)

	amount := correlations[analysis.PairAmountSatisfaction]
	assert.InDelta(t, 1.0, amount.Coefficient, 1e-9)
	assert.Contains(t, amount.Description, "strong")
	assert.Contains(t, amount.Description, "positive")
}

func TestCorrelate_PerPairFiltering(t *testing.T) {
	day := date(2025, 7, 1)

	// Six records for the amount pair, but only three carry a planning
	// lead time, so the planning pair stays under the threshold.
	var records []*purchase.Purchase

	for i := 0; i < 6; i++ {
		p := record(int64(100*(i+1)), "food", purchase.DecisionPlanned, i%6, nil, day)
		if i < 3 {
			p.PlanningLeadDays = intPtr(i * 7)
		}

		records = append(records, p)
	}

	correlations := analysis.Correlate(records)

	assert.NotContains(t, correlations[analysis.PairAmountSatisfaction].Description, "Not enough data")
	assert.Zero(t, correlations[analysis.PairPlanningSatisfaction].Coefficient)
	assert.Contains(t, correlations[analysis.PairPlanningSatisfaction].Description, "Not enough data")
}

func TestCorrelate_NoVariance(t *testing.T) {
	day := date(2025, 7, 1)

	// Identical satisfaction everywhere: the denominator collapses and the
	// coefficient stays 0 instead of going NaN.
	var records []*purchase.Purchase
	for i := 0; i < 6; i++ {
		records = append(records, record(int64(100*(i+1)), "food", purchase.DecisionImpulse, 3, nil, day))
	}

	correlations := analysis.Correlate(records)
	assert.Zero(t, correlations[analysis.PairAmountSatisfaction].Coefficient)
}
