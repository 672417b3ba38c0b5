package analysis

import (
	"fmt"
	"math"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

const insufficientDataDescription = "Not enough data for a meaningful correlation"

// Correlate computes Pearson correlations between spending attributes and
// satisfaction. Records missing an input are excluded from that pair only.
// Below minSampleSize valid pairs the coefficient is reported as 0 with an
// explanatory description rather than a statistically meaningless value.
func Correlate(records []*purchase.Purchase) map[string]Correlation {
	var (
		amounts, amountSat []float64
		leads, leadSat     []float64
	)

	for _, p := range records {
		amounts = append(amounts, float64(p.Amount))
		amountSat = append(amountSat, float64(p.SatisfactionInitial))

		if p.PlanningLeadDays != nil {
			leads = append(leads, float64(*p.PlanningLeadDays))
			leadSat = append(leadSat, float64(p.SatisfactionInitial))
		}
	}

	return map[string]Correlation{
		PairAmountSatisfaction:   correlationFor(amounts, amountSat, "purchase amount"),
		PairPlanningSatisfaction: correlationFor(leads, leadSat, "planning lead time"),
	}
}

func correlationFor(x, y []float64, attribute string) Correlation {
	if len(x) < minSampleSize {
		return Correlation{Coefficient: 0, Description: insufficientDataDescription}
	}

	r := pearson(x, y)

	return Correlation{
		Coefficient: r,
		Description: describeCorrelation(r, attribute),
	}
}

func describeCorrelation(r float64, attribute string) string {
	strength := "no"

	switch abs := math.Abs(r); {
	case abs >= 0.7:
		strength = "a strong"
	case abs >= 0.4:
		strength = "a moderate"
	case abs >= 0.2:
		strength = "a weak"
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	if strength == "no" {
		return fmt.Sprintf("No clear relationship between %s and satisfaction", attribute)
	}

	return fmt.Sprintf("There is %s %s relationship between %s and satisfaction", strength, direction, attribute)
}
