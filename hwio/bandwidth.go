package hwio

import "github.com/nerf-sim/nerf-sim/ir"

// BytesPerCycle derives the effective main-memory bytes/cycle (B_hw from
// §4.2's roofline equation and §4.3's bandwidth floor) from a
// MemoryHierarchy and the accelerator clock. Returns 0 when bandwidth or
// clock is unconfigured, signalling "no bandwidth ceiling": callers treat
// a 0 result as an infinite B_hw.
func BytesPerCycle(mem *ir.MemoryHierarchy, clockHz float64) float64 {
	if mem == nil || mem.MainMemoryBandwidthGBs <= 0 || clockHz <= 0 {
		return 0
	}
	return (mem.MainMemoryBandwidthGBs * 1e9) / clockHz
}
