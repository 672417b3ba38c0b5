package analysis

import (
	"sort"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

// dominantCategoryLimit caps the categories reported per cluster.
const dominantCategoryLimit = 3

// clusterRule assigns records to one archetype of the fixed taxonomy. Rules
// are evaluated in order and the first match wins, so assignment is a pure,
// total function of the record's fields. A record without a follow-up score
// uses the initial score as proxy, making its satisfaction delta zero.
type clusterRule struct {
	id          int
	name        string
	description string
	match       func(p *purchase.Purchase) bool
}

var clusterRules = []clusterRule{
	{
		id:          1,
		name:        "Planned, lasting satisfaction",
		description: "Deliberate purchases whose satisfaction held up or improved over the first month.",
		match: func(p *purchase.Purchase) bool {
			return p.Decision == purchase.DecisionPlanned && p.SatisfactionDelta() >= 0
		},
	},
	{
		id:          2,
		name:        "Planned, satisfaction decline",
		description: "Deliberate purchases that felt worse a month later than on the day.",
		match: func(p *purchase.Purchase) bool {
			return p.Decision == purchase.DecisionPlanned && p.SatisfactionDelta() < 0
		},
	},
	{
		id:          3,
		name:        "Impulse, satisfaction held up",
		description: "Spur-of-the-moment purchases that still felt worth it a month later.",
		match: func(p *purchase.Purchase) bool {
			return p.Decision != purchase.DecisionPlanned && p.SatisfactionDelta() >= 0
		},
	},
	{
		id:          4,
		name:        "Impulse, satisfaction decline",
		description: "Spur-of-the-moment purchases followed by regret within a month.",
		match: func(p *purchase.Purchase) bool {
			return p.Decision != purchase.DecisionPlanned && p.SatisfactionDelta() < 0
		},
	},
}

// Cluster assigns every record to exactly one behavioral archetype and
// computes per-cluster characteristics. Clusters are emitted in canonical
// taxonomy order regardless of size; a cluster with no members is still
// reported with count 0 and zero-valued characteristics.
func Cluster(records []*purchase.Purchase) []ClusterResult {
	assigned := make(map[int][]*purchase.Purchase, len(clusterRules))

	for _, p := range records {
		for _, rule := range clusterRules {
			if rule.match(p) {
				assigned[rule.id] = append(assigned[rule.id], p)
				break
			}
		}
	}

	results := make([]ClusterResult, 0, len(clusterRules))

	for _, rule := range clusterRules {
		members := assigned[rule.id]

		results = append(results, ClusterResult{
			ID:              rule.id,
			Name:            rule.name,
			Description:     rule.description,
			ItemsCount:      len(members),
			Characteristics: characteristics(members),
		})
	}

	return results
}

func characteristics(members []*purchase.Purchase) ClusterCharacteristics {
	var (
		initialSum, followupSum, amountSum float64
		plannedCount                       int
	)

	for _, p := range members {
		initialSum += float64(p.SatisfactionInitial)
		followupSum += float64(p.EffectiveSatisfaction())
		amountSum += float64(p.Amount)

		if p.Decision == purchase.DecisionPlanned {
			plannedCount++
		}
	}

	return ClusterCharacteristics{
		AvgSatisfactionInitial:  safeAverage(initialSum, len(members)),
		AvgSatisfactionFollowup: safeAverage(followupSum, len(members)),
		DominantCategories:      dominantCategories(members),
		AvgAmount:               safeAverage(amountSum, len(members)),
		PlannedRatio:            safeRatio(plannedCount, len(members)),
	}
}

// dominantCategories returns the most frequent categories among members,
// most frequent first, ties broken lexicographically.
func dominantCategories(members []*purchase.Purchase) []string {
	if len(members) == 0 {
		return []string{}
	}

	counts := make(map[string]int)
	for _, p := range members {
		counts[p.Category]++
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}

	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}

		return categories[i] < categories[j]
	})

	if len(categories) > dominantCategoryLimit {
		categories = categories[:dominantCategoryLimit]
	}

	return categories
}
