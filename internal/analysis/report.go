package analysis

import "time"

// SummaryReport is the immutable result of the basic analysis. It is built
// once per computation and shared between cache and callers; nothing
// mutates it after assembly.
type SummaryReport struct {
	Summary           Summary
	CategorySpending  []CategorySpending
	SatisfactionTrend []TrendPoint
	DecisionSpeed     DecisionSpeed
}

type Summary struct {
	TotalAmount         int64
	TotalItems          int
	AverageSatisfaction float64
	Period              string
	StartDate           time.Time
	EndDate             time.Time
}

type CategorySpending struct {
	Category   string
	Amount     int64
	ItemsCount int
}

// TrendPoint is one week-sized bucket of the satisfaction trend. Average is
// nil for buckets without records; empty buckets are reported, not omitted,
// so the trend length depends only on the period.
type TrendPoint struct {
	WeekStart  time.Time
	Average    *float64
	ItemsCount int
}

type DecisionSpeed struct {
	Planned DecisionStats
	Impulse DecisionStats
}

type DecisionStats struct {
	Count               int
	AverageSatisfaction float64
	Percentage          float64
}

// PatternReport is the immutable result of the behavioral pattern analysis.
type PatternReport struct {
	Clusters     []ClusterResult
	Insights     []Insight
	Correlations map[string]Correlation
}

type ClusterResult struct {
	ID              int
	Name            string
	Description     string
	ItemsCount      int
	Characteristics ClusterCharacteristics
}

type ClusterCharacteristics struct {
	AvgSatisfactionInitial  float64
	AvgSatisfactionFollowup float64
	DominantCategories      []string
	AvgAmount               float64
	PlannedRatio            float64
}

type InsightType string

const (
	InsightInfo     InsightType = "info"
	InsightWarning  InsightType = "warning"
	InsightPositive InsightType = "positive"
)

type Insight struct {
	Type       InsightType
	Title      string
	Message    string
	Confidence float64
}

// Correlation pairs reported by Correlate.
const (
	PairAmountSatisfaction   = "amount_satisfaction"
	PairPlanningSatisfaction = "planning_satisfaction"
)

type Correlation struct {
	Coefficient float64
	Description string
}
