package dags

import "github.com/nerf-sim/nerf-sim/ir"

// Weights holds the (α, β) configuration for the DAGS scoring function
// (§4.3); defaults are α=0.6, β=0.4 per spec.
type Weights struct {
	Alpha float64
	Beta  float64
}

// DefaultWeights returns the spec's default scoring weights.
func DefaultWeights() Weights {
	return Weights{Alpha: 0.6, Beta: 0.4}
}

// score computes score(v) = α·SC(v) + β·CR(v).
func (w Weights) score(sc int64, cr float64) float64 {
	return w.Alpha*float64(sc) + w.Beta*cr
}

// avgDurationByUnit computes avg_duration(u) for every hardware unit that
// has at least one node mapped to it, per §4.3's CR(v) definition.
func avgDurationByUnit(nodes map[string]ir.OpScheduledNode) map[string]float64 {
	sum := make(map[string]int64)
	count := make(map[string]int64)
	for _, n := range nodes {
		sum[n.Mapped.HWUnitID] += n.Duration
		count[n.Mapped.HWUnitID]++
	}
	avg := make(map[string]float64, len(sum))
	for unit, total := range sum {
		avg[unit] = float64(total) / float64(count[unit])
	}
	return avg
}

// criticalResourceImpact computes CR(v) = duration(v) / avg_duration(unit).
func criticalResourceImpact(n ir.OpScheduledNode, avgDuration map[string]float64) float64 {
	avg := avgDuration[n.Mapped.HWUnitID]
	if avg <= 0 {
		return 0
	}
	return float64(n.Duration) / avg
}
