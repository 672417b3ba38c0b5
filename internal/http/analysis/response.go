package analysis

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/oizumi98/kaimono-api/internal/analysis"
	"github.com/oizumi98/kaimono-api/internal/cache"
)

type cacheInfoDTO struct {
	Cached    bool      `json:"cached"`
	UpdatedAt time.Time `json:"updated_at"`
}

type basicResponse struct {
	Status    string       `json:"status"`
	Data      basicData    `json:"data"`
	CacheInfo cacheInfoDTO `json:"cache_info"`
}

type basicData struct {
	Summary               summaryDTO            `json:"summary"`
	CategorySpending      []categorySpendingDTO `json:"category_spending"`
	SatisfactionTrend     []trendPointDTO       `json:"satisfaction_trend"`
	DecisionSpeedAnalysis decisionSpeedDTO      `json:"decision_speed_analysis"`
}

type summaryDTO struct {
	TotalAmount         int64   `json:"total_amount"`
	TotalItems          int     `json:"total_items"`
	AverageSatisfaction float64 `json:"average_satisfaction"`
	Period              string  `json:"period"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
}

type categorySpendingDTO struct {
	Category   string `json:"category"`
	Amount     int64  `json:"amount"`
	ItemsCount int    `json:"items_count"`
}

type trendPointDTO struct {
	WeekStart           string   `json:"week_start"`
	AverageSatisfaction *float64 `json:"average_satisfaction"`
	ItemsCount          int      `json:"items_count"`
}

type decisionSpeedDTO struct {
	Planned decisionStatsDTO `json:"planned"`
	Impulse decisionStatsDTO `json:"impulse"`
}

type decisionStatsDTO struct {
	Count               int     `json:"count"`
	AverageSatisfaction float64 `json:"average_satisfaction"`
	Percentage          float64 `json:"percentage"`
}

type patternResponse struct {
	Status    string       `json:"status"`
	Data      patternData  `json:"data"`
	CacheInfo cacheInfoDTO `json:"cache_info"`
}

type patternData struct {
	PurchaseClusters []clusterDTO              `json:"purchase_clusters"`
	Insights         []insightDTO              `json:"insights"`
	Correlations     map[string]correlationDTO `json:"correlations"`
}

type clusterDTO struct {
	ClusterID       int                `json:"cluster_id"`
	ClusterName     string             `json:"cluster_name"`
	Description     string             `json:"description"`
	ItemsCount      int                `json:"items_count"`
	Characteristics characteristicsDTO `json:"characteristics"`
}

type characteristicsDTO struct {
	AvgSatisfactionInitial float64  `json:"avg_satisfaction_initial"`
	AvgSatisfactionMonth   float64  `json:"avg_satisfaction_month"`
	DominantCategories     []string `json:"dominant_categories"`
	AvgAmount              float64  `json:"avg_amount"`
	PlannedRatio           float64  `json:"planned_ratio"`
}

type insightDTO struct {
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

type correlationDTO struct {
	Correlation float64 `json:"correlation"`
	Description string  `json:"description"`
}

func toBasicResponse(report analysis.SummaryReport, info cache.Info) basicResponse {
	data := basicData{
		Summary: summaryDTO{
			TotalAmount:         report.Summary.TotalAmount,
			TotalItems:          report.Summary.TotalItems,
			AverageSatisfaction: report.Summary.AverageSatisfaction,
			Period:              report.Summary.Period,
			StartDate:           report.Summary.StartDate.Format(time.DateOnly),
			EndDate:             report.Summary.EndDate.Format(time.DateOnly),
		},
		CategorySpending:  make([]categorySpendingDTO, 0, len(report.CategorySpending)),
		SatisfactionTrend: make([]trendPointDTO, 0, len(report.SatisfactionTrend)),
		DecisionSpeedAnalysis: decisionSpeedDTO{
			Planned: toDecisionStats(report.DecisionSpeed.Planned),
			Impulse: toDecisionStats(report.DecisionSpeed.Impulse),
		},
	}

	for _, cs := range report.CategorySpending {
		data.CategorySpending = append(data.CategorySpending, categorySpendingDTO{
			Category:   cs.Category,
			Amount:     cs.Amount,
			ItemsCount: cs.ItemsCount,
		})
	}

	for _, tp := range report.SatisfactionTrend {
		data.SatisfactionTrend = append(data.SatisfactionTrend, trendPointDTO{
			WeekStart:           tp.WeekStart.Format(time.DateOnly),
			AverageSatisfaction: tp.Average,
			ItemsCount:          tp.ItemsCount,
		})
	}

	return basicResponse{Status: "success", Data: data, CacheInfo: toCacheInfo(info)}
}

func toPatternResponse(report analysis.PatternReport, info cache.Info) patternResponse {
	data := patternData{
		PurchaseClusters: make([]clusterDTO, 0, len(report.Clusters)),
		Insights:         make([]insightDTO, 0, len(report.Insights)),
		Correlations:     make(map[string]correlationDTO, len(report.Correlations)),
	}

	for _, c := range report.Clusters {
		data.PurchaseClusters = append(data.PurchaseClusters, clusterDTO{
			ClusterID:   c.ID,
			ClusterName: c.Name,
			Description: c.Description,
			ItemsCount:  c.ItemsCount,
			Characteristics: characteristicsDTO{
				AvgSatisfactionInitial: c.Characteristics.AvgSatisfactionInitial,
				AvgSatisfactionMonth:   c.Characteristics.AvgSatisfactionFollowup,
				DominantCategories:     c.Characteristics.DominantCategories,
				AvgAmount:              c.Characteristics.AvgAmount,
				PlannedRatio:           c.Characteristics.PlannedRatio,
			},
		})
	}

	for _, i := range report.Insights {
		data.Insights = append(data.Insights, insightDTO{
			Type:       string(i.Type),
			Title:      i.Title,
			Message:    i.Message,
			Confidence: i.Confidence,
		})
	}

	for pair, c := range report.Correlations {
		data.Correlations[pair] = correlationDTO{
			Correlation: c.Coefficient,
			Description: c.Description,
		}
	}

	return patternResponse{Status: "success", Data: data, CacheInfo: toCacheInfo(info)}
}

func toDecisionStats(s analysis.DecisionStats) decisionStatsDTO {
	return decisionStatsDTO{
		Count:               s.Count,
		AverageSatisfaction: s.AverageSatisfaction,
		Percentage:          s.Percentage,
	}
}

func toCacheInfo(info cache.Info) cacheInfoDTO {
	return cacheInfoDTO{Cached: info.Cached, UpdatedAt: info.ComputedAt}
}

type errorResponse struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message, severity string, retryable bool) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Error: errorDetail{
			Code:      code,
			Message:   message,
			Severity:  severity,
			Retryable: retryable,
			Timestamp: time.Now().UTC(),
		},
	})
}
