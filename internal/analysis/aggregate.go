package analysis

import (
	"sort"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

// trendBucketDays is the satisfaction trend granularity.
const trendBucketDays = 7

// Aggregate computes the summary totals, per-category spending and the
// weekly satisfaction trend. It is a pure function of its inputs and never
// fails: an empty record set yields an all-zero report with the period
// echoed back.
func Aggregate(records []*purchase.Purchase, period Period) SummaryReport {
	report := SummaryReport{
		Summary: Summary{
			Period:    period.Label,
			StartDate: period.Start,
			EndDate:   period.End,
		},
	}

	var satisfactionSum float64

	for _, p := range records {
		report.Summary.TotalAmount += p.Amount
		satisfactionSum += float64(p.SatisfactionInitial)
	}

	report.Summary.TotalItems = len(records)
	report.Summary.AverageSatisfaction = safeAverage(satisfactionSum, len(records))
	report.CategorySpending = categorySpending(records)
	report.SatisfactionTrend = satisfactionTrend(records, period)
	report.DecisionSpeed = ClassifyDecisionSpeed(records)

	return report
}

// categorySpending groups amounts by category, ordered by amount descending
// with lexicographic tie-breaking for determinism.
func categorySpending(records []*purchase.Purchase) []CategorySpending {
	byCategory := make(map[string]*CategorySpending)

	for _, p := range records {
		cs, ok := byCategory[p.Category]
		if !ok {
			cs = &CategorySpending{Category: p.Category}
			byCategory[p.Category] = cs
		}

		cs.Amount += p.Amount
		cs.ItemsCount++
	}

	spending := make([]CategorySpending, 0, len(byCategory))
	for _, cs := range byCategory {
		spending = append(spending, *cs)
	}

	sort.Slice(spending, func(i, j int) bool {
		if spending[i].Amount != spending[j].Amount {
			return spending[i].Amount > spending[j].Amount
		}

		return spending[i].Category < spending[j].Category
	})

	return spending
}

// satisfactionTrend buckets records into fixed-size windows anchored at the
// period start. Buckets without records carry a nil average so the trend
// length is derived from the period alone.
func satisfactionTrend(records []*purchase.Purchase, period Period) []TrendPoint {
	buckets := (period.Days() + trendBucketDays - 1) / trendBucketDays
	if buckets <= 0 {
		buckets = 1
	}

	sums := make([]float64, buckets)
	counts := make([]int, buckets)

	for _, p := range records {
		idx := int(p.Date.Sub(period.Start).Hours()) / 24 / trendBucketDays
		if idx < 0 || idx >= buckets {
			continue
		}

		sums[idx] += float64(p.EffectiveSatisfaction())
		counts[idx]++
	}

	trend := make([]TrendPoint, buckets)

	for i := range trend {
		trend[i] = TrendPoint{
			WeekStart:  period.Start.AddDate(0, 0, i*trendBucketDays),
			ItemsCount: counts[i],
		}

		if counts[i] > 0 {
			avg := sums[i] / float64(counts[i])
			trend[i].Average = &avg
		}
	}

	return trend
}
