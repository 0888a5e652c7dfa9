// Package stats holds small descriptive statistics used by the crowd summaries.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between closest ranks. The input is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(100, p))

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// NormalizedEntropy returns the Shannon entropy of counts divided by the
// maximum for len(counts) categories, so 0 means one category holds
// everything and 1 means an even split.
func NormalizedEntropy(counts []float64) float64 {
	if len(counts) < 2 {
		return 0
	}
	var sum float64
	for _, c := range counts {
		sum += c
	}
	if sum == 0 {
		return 0
	}

	var entropy float64
	for _, c := range counts {
		if c > 0 {
			p := c / sum
			entropy -= p * math.Log2(p)
		}
	}
	return entropy / math.Log2(float64(len(counts)))
}
