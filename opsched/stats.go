package opsched

import "gonum.org/v1/gonum/stat"

// Stats is the per-stage statistics record produced alongside an
// OpScheduledIR (§4.2).
type Stats struct {
	TotalOperators       int
	OptimizedOperators   int
	GeometricMeanSpeedup float64
	PerUnitOperatorCount map[string]int
	MissingParamWarnings int
}

// geometricMean returns the unweighted geometric mean of the given
// positive speedup ratios, or 1 (no speedup) when the set is empty.
func geometricMean(values []float64) float64 {
	if len(values) == 0 {
		return 1
	}
	return stat.GeometricMean(values, nil)
}
