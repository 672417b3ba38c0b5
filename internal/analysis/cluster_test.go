package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oizumi98/kaimono-api/internal/analysis"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

func TestCluster_Assignment(t *testing.T) {
	day := date(2025, 7, 1)

	records := []*purchase.Purchase{
		// Cluster 1: planned, satisfaction held.
		record(1000, "food", purchase.DecisionPlanned, 4, intPtr(4), day),
		record(2000, "food", purchase.DecisionPlanned, 3, intPtr(5), day),
		// Cluster 1: planned without followup, initial stands in (delta 0).
		record(3000, "books", purchase.DecisionPlanned, 5, nil, day),
		// Cluster 2: planned, declined.
		record(4000, "electronics", purchase.DecisionPlanned, 5, intPtr(2), day),
		// Cluster 4: impulse, declined.
		record(5000, "electronics", purchase.DecisionImpulse, 5, intPtr(1), day),
	}

	clusters := analysis.Cluster(records)
	require.Len(t, clusters, 4)

	// Canonical taxonomy order, not sorted by size.
	for i, c := range clusters {
		assert.Equal(t, i+1, c.ID)
	}

	assert.Equal(t, 3, clusters[0].ItemsCount)
	assert.Equal(t, 1, clusters[1].ItemsCount)
	assert.Equal(t, 0, clusters[2].ItemsCount)
	assert.Equal(t, 1, clusters[3].ItemsCount)

	lasting := clusters[0].Characteristics
	assert.InDelta(t, 4.0, lasting.AvgSatisfactionInitial, 1e-9)
	assert.InDelta(t, (4.0+5.0+5.0)/3.0, lasting.AvgSatisfactionFollowup, 1e-9)
	assert.InDelta(t, 2000.0, lasting.AvgAmount, 1e-9)
	assert.InDelta(t, 1.0, lasting.PlannedRatio, 1e-9)
	assert.Equal(t, []string{"food", "books"}, lasting.DominantCategories)
}

func TestCluster_EmptyClusterReported(t *testing.T) {
	clusters := analysis.Cluster(nil)
	require.Len(t, clusters, 4)

	for _, c := range clusters {
		assert.Zero(t, c.ItemsCount)
		assert.Zero(t, c.Characteristics.AvgAmount)
		assert.Zero(t, c.Characteristics.AvgSatisfactionInitial)
		assert.Zero(t, c.Characteristics.PlannedRatio)
		assert.Empty(t, c.Characteristics.DominantCategories)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Description)
	}
}

func TestCluster_Deterministic(t *testing.T) {
	var records []*purchase.Purchase

	for i := 0; i < 20; i++ {
		decision := purchase.DecisionPlanned
		if i%3 == 0 {
			decision = purchase.DecisionImpulse
		}

		var followup *int
		if i%2 == 0 {
			followup = intPtr(i % 6)
		}

		records = append(records, record(int64(100*i), "cat"+string(rune('a'+i%4)), decision, i%6, followup, date(2025, 7, 1).Add(time.Duration(i)*24*time.Hour)))
	}

	first := analysis.Cluster(records)
	second := analysis.Cluster(records)

	assert.Equal(t, first, second)
}
