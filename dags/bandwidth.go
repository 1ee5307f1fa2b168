package dags

import (
	"math"

	"github.com/nerf-sim/nerf-sim/hwio"
	"github.com/nerf-sim/nerf-sim/ir"
)

// memoryBandwidthFloor computes, for every node, max(duration,
// ceil(v_off / bytes_per_cycle)) when a main-memory bandwidth and clock
// are configured, per §4.3's optional post-pass: "every operator's
// duration may be raised ... before placement. This preserves all
// correctness guarantees; it only inflates durations." Applying the
// floor before placement (rather than after, against already-committed
// start cycles) is what keeps the dependency and exclusivity guarantees
// intact: DAGS places nodes using the floored duration from the start.
func memoryBandwidthFloor(nodes map[string]ir.OpScheduledNode, mem *ir.MemoryHierarchy, clockHz float64) map[string]int64 {
	durations := make(map[string]int64, len(nodes))
	for id, n := range nodes {
		durations[id] = n.Duration
	}
	bytesPerCycle := hwio.BytesPerCycle(mem, clockHz)
	if bytesPerCycle <= 0 {
		return durations
	}
	for id, n := range nodes {
		floor := int64(math.Ceil(n.Resource.VOff / bytesPerCycle))
		if floor > durations[id] {
			durations[id] = floor
		}
	}
	return durations
}
