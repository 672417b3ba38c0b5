package analysis

import "math"

// minSampleSize is the uniform "enough data" threshold shared by the
// correlation analyzer and the insight generator. Below it, correlations
// report 0 and insights collapse to a single not-enough-data notice.
// Clustering has no threshold: its archetypes are counting, not inference.
const minSampleSize = 5

// safeAverage returns sum/n, defined as 0 when n is 0 so that empty record
// sets produce a valid zero-valued report instead of NaN.
func safeAverage(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

// safeRatio returns part/total, defined as 0 when total is 0.
func safeRatio(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total)
}

// pearson computes the Pearson correlation coefficient of two equal-length
// series. Returns 0 when either series has no variance.
func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	n := float64(len(x))

	var sumX, sumY, sumXY, sumX2, sumY2 float64

	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denominator
}
