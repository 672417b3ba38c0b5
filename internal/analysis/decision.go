package analysis

import "github.com/oizumi98/kaimono-api/internal/purchase"

// ClassifyDecisionSpeed partitions records into planned and impulse groups
// and computes per-group statistics. The partition is total: every record
// carries exactly one decision type, and anything not marked planned counts
// as impulse. Percentages are defined as 0 for both groups when there are
// no records.
func ClassifyDecisionSpeed(records []*purchase.Purchase) DecisionSpeed {
	var (
		plannedCount, impulseCount int
		plannedSum, impulseSum     float64
	)

	for _, p := range records {
		if p.Decision == purchase.DecisionPlanned {
			plannedCount++
			plannedSum += float64(p.SatisfactionInitial)

			continue
		}

		impulseCount++
		impulseSum += float64(p.SatisfactionInitial)
	}

	total := len(records)

	return DecisionSpeed{
		Planned: DecisionStats{
			Count:               plannedCount,
			AverageSatisfaction: safeAverage(plannedSum, plannedCount),
			Percentage:          safeRatio(plannedCount, total),
		},
		Impulse: DecisionStats{
			Count:               impulseCount,
			AverageSatisfaction: safeAverage(impulseSum, impulseCount),
			Percentage:          safeRatio(impulseCount, total),
		},
	}
}
