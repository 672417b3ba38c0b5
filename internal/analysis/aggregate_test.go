package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oizumi98/kaimono-api/internal/analysis"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func record(amount int64, category string, decision purchase.DecisionType, initial int, followup *int, day time.Time) *purchase.Purchase {
	return &purchase.Purchase{
		Amount:               amount,
		Category:             category,
		Date:                 day,
		Decision:             decision,
		SatisfactionInitial:  initial,
		SatisfactionFollowup: followup,
	}
}

func testPeriod() analysis.Period {
	return analysis.Period{
		Label: "custom",
		Start: date(2025, 7, 1),
		End:   date(2025, 7, 28),
	}
}

func TestAggregate_Scenario(t *testing.T) {
	period := testPeriod()

	records := []*purchase.Purchase{
		record(1000, "food", purchase.DecisionPlanned, 4, intPtr(4), date(2025, 7, 2)),
		record(5000, "electronics", purchase.DecisionImpulse, 5, intPtr(2), date(2025, 7, 10)),
		record(200, "food", purchase.DecisionPlanned, 3, intPtr(3), date(2025, 7, 20)),
	}

	report := analysis.Aggregate(records, period)

	assert.Equal(t, int64(6200), report.Summary.TotalAmount)
	assert.Equal(t, 3, report.Summary.TotalItems)
	assert.InDelta(t, 4.0, report.Summary.AverageSatisfaction, 1e-9)
	assert.Equal(t, "custom", report.Summary.Period)

	require.Len(t, report.CategorySpending, 2)
	assert.Equal(t, "electronics", report.CategorySpending[0].Category)
	assert.Equal(t, int64(5000), report.CategorySpending[0].Amount)
	assert.Equal(t, "food", report.CategorySpending[1].Category)
	assert.Equal(t, int64(1200), report.CategorySpending[1].Amount)

	planned := report.DecisionSpeed.Planned
	impulse := report.DecisionSpeed.Impulse
	assert.Equal(t, 2, planned.Count)
	assert.InDelta(t, 3.5, planned.AverageSatisfaction, 1e-9)
	assert.InDelta(t, 2.0/3.0, planned.Percentage, 1e-9)
	assert.Equal(t, 1, impulse.Count)
	assert.InDelta(t, 5.0, impulse.AverageSatisfaction, 1e-9)
	assert.InDelta(t, 1.0/3.0, impulse.Percentage, 1e-9)

	assert.InDelta(t, 1.0, planned.Percentage+impulse.Percentage, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	period := testPeriod()

	report := analysis.Aggregate(nil, period)

	assert.Equal(t, int64(0), report.Summary.TotalAmount)
	assert.Equal(t, 0, report.Summary.TotalItems)
	assert.Equal(t, 0.0, report.Summary.AverageSatisfaction)
	assert.Empty(t, report.CategorySpending)
	assert.Equal(t, 0.0, report.DecisionSpeed.Planned.Percentage)
	assert.Equal(t, 0.0, report.DecisionSpeed.Impulse.Percentage)

	// 28 days -> 4 weekly buckets, all present, all without an average.
	require.Len(t, report.SatisfactionTrend, 4)

	for _, point := range report.SatisfactionTrend {
		assert.Nil(t, point.Average)
		assert.Zero(t, point.ItemsCount)
	}
}

func TestAggregate_TrendBuckets(t *testing.T) {
	period := testPeriod()

	// Week 1: followup present, used over initial. Week 3: no followup,
	// initial score stands in.
	records := []*purchase.Purchase{
		record(100, "food", purchase.DecisionPlanned, 5, intPtr(3), date(2025, 7, 1)),
		record(100, "food", purchase.DecisionPlanned, 1, intPtr(5), date(2025, 7, 7)),
		record(100, "books", purchase.DecisionImpulse, 2, nil, date(2025, 7, 16)),
	}

	report := analysis.Aggregate(records, period)
	trend := report.SatisfactionTrend
	require.Len(t, trend, 4)

	require.NotNil(t, trend[0].Average)
	assert.InDelta(t, 4.0, *trend[0].Average, 1e-9)
	assert.Equal(t, 2, trend[0].ItemsCount)

	assert.Nil(t, trend[1].Average)

	require.NotNil(t, trend[2].Average)
	assert.InDelta(t, 2.0, *trend[2].Average, 1e-9)

	assert.Nil(t, trend[3].Average)

	assert.Equal(t, date(2025, 7, 1), trend[0].WeekStart)
	assert.Equal(t, date(2025, 7, 8), trend[1].WeekStart)
}

func TestAggregate_CategoryTieBreak(t *testing.T) {
	period := testPeriod()

	records := []*purchase.Purchase{
		record(500, "hobby", purchase.DecisionPlanned, 3, nil, date(2025, 7, 2)),
		record(500, "food", purchase.DecisionPlanned, 3, nil, date(2025, 7, 3)),
	}

	report := analysis.Aggregate(records, period)

	require.Len(t, report.CategorySpending, 2)
	assert.Equal(t, "food", report.CategorySpending[0].Category)
	assert.Equal(t, "hobby", report.CategorySpending[1].Category)
}

func TestAggregate_Deterministic(t *testing.T) {
	period := testPeriod()

	records := []*purchase.Purchase{
		record(1000, "food", purchase.DecisionPlanned, 4, intPtr(4), date(2025, 7, 2)),
		record(5000, "electronics", purchase.DecisionImpulse, 5, intPtr(2), date(2025, 7, 10)),
		record(200, "food", purchase.DecisionPlanned, 3, nil, date(2025, 7, 20)),
		record(200, "travel", purchase.DecisionImpulse, 2, nil, date(2025, 7, 25)),
	}

	first := analysis.Aggregate(records, period)
	second := analysis.Aggregate(records, period)

	assert.Equal(t, first, second)
}
