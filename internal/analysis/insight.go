package analysis

import (
	"fmt"
	"math"
)

// Insight rule thresholds.
const (
	dominantClusterShare  = 0.5
	impulseRegretShare    = 0.3
	strongCorrelation     = 0.5
	satisfactionGapPoints = 1.0
)

// GenerateInsights derives human-readable insights from the computed
// reports. Below minSampleSize records it emits exactly one info insight
// stating the data is insufficient, suppressing everything else. Otherwise
// rules are evaluated in fixed priority order.
func GenerateInsights(summary SummaryReport, clusters []ClusterResult, correlations map[string]Correlation) []Insight {
	total := summary.Summary.TotalItems

	if total < minSampleSize {
		return []Insight{{
			Type:       InsightInfo,
			Title:      "Not enough data yet",
			Message:    "There are not enough recorded purchases to analyze. Keep logging purchases to unlock pattern insights.",
			Confidence: 1.0,
		}}
	}

	var insights []Insight

	if insight, ok := dominantClusterInsight(clusters, total); ok {
		insights = append(insights, insight)
	}

	if insight, ok := impulseRegretInsight(clusters, total); ok {
		insights = append(insights, insight)
	}

	for _, pair := range []string{PairAmountSatisfaction, PairPlanningSatisfaction} {
		if insight, ok := correlationInsight(pair, correlations[pair]); ok {
			insights = append(insights, insight)
		}
	}

	if insight, ok := planningGapInsight(summary.DecisionSpeed); ok {
		insights = append(insights, insight)
	}

	return insights
}

func dominantClusterInsight(clusters []ClusterResult, total int) (Insight, bool) {
	for _, c := range clusters {
		share := safeRatio(c.ItemsCount, total)
		if share < dominantClusterShare {
			continue
		}

		return Insight{
			Type:       InsightInfo,
			Title:      fmt.Sprintf("Most purchases look like: %s", c.Name),
			Message:    fmt.Sprintf("%.0f%% of your purchases fall into the %q pattern.", share*100, c.Name),
			Confidence: share,
		}, true
	}

	return Insight{}, false
}

func impulseRegretInsight(clusters []ClusterResult, total int) (Insight, bool) {
	for _, c := range clusters {
		// Cluster 4 is the impulse purchases with declining satisfaction.
		if c.ID != 4 {
			continue
		}

		share := safeRatio(c.ItemsCount, total)
		if share <= impulseRegretShare {
			return Insight{}, false
		}

		return Insight{
			Type:       InsightWarning,
			Title:      "Impulse purchases tend to disappoint",
			Message:    fmt.Sprintf("%.0f%% of your purchases were impulse buys whose satisfaction dropped within a month. A short cooling-off period may help.", share*100),
			Confidence: share,
		}, true
	}

	return Insight{}, false
}

func correlationInsight(pair string, c Correlation) (Insight, bool) {
	if math.Abs(c.Coefficient) < strongCorrelation {
		return Insight{}, false
	}

	title := "Spending amount and satisfaction are linked"
	if pair == PairPlanningSatisfaction {
		title = "Planning ahead and satisfaction are linked"
	}

	return Insight{
		Type:       InsightPositive,
		Title:      title,
		Message:    c.Description,
		Confidence: math.Abs(c.Coefficient),
	}, true
}

func planningGapInsight(speed DecisionSpeed) (Insight, bool) {
	if speed.Planned.Count == 0 || speed.Impulse.Count == 0 {
		return Insight{}, false
	}

	gap := speed.Planned.AverageSatisfaction - speed.Impulse.AverageSatisfaction
	if gap < satisfactionGapPoints {
		return Insight{}, false
	}

	return Insight{
		Type:       InsightPositive,
		Title:      "Planned purchases satisfy you more",
		Message:    fmt.Sprintf("Planned purchases average %.1f satisfaction versus %.1f for impulse buys.", speed.Planned.AverageSatisfaction, speed.Impulse.AverageSatisfaction),
		Confidence: math.Min(gap/float64(2), 1.0),
	}, true
}
