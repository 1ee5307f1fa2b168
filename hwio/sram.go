// Package hwio hosts the SRAM IO policy and main-memory bandwidth modeling
// support data named in §6: granule bytes, per-side bandwidth, and
// per-access latency/energy. It performs no simulation of its own — DRAM
// and SRAM cycle simulation is out of core scope per §1 — it only derives
// per-access SRAM cost figures (ReadCost, WriteCost) and the main-memory
// bytes/cycle (BytesPerCycle) that opsched's roofline memory term and
// dags's memory-bandwidth floor consume. No core stage calls ReadCost or
// WriteCost.
package hwio

import "github.com/nerf-sim/nerf-sim/ir"

// AccessCost is the derived per-access cost of one SRAM transaction under
// a configured SRAMIOPolicy.
type AccessCost struct {
	Cycles int64
	EnergyPJ float64
}

// ReadCost computes the cost of reading n bytes under the given policy,
// rounding up to whole granules. A nil policy (unconfigured SRAM) returns
// a zero cost, signalling "not modeled".
func ReadCost(policy *ir.SRAMIOPolicy, bytes int64) AccessCost {
	if policy == nil {
		return accessCost(nil, bytes, 0)
	}
	return accessCost(policy, bytes, policy.ReadBandwidthGBs)
}

// WriteCost computes the cost of writing n bytes under the given policy.
func WriteCost(policy *ir.SRAMIOPolicy, bytes int64) AccessCost {
	if policy == nil {
		return accessCost(nil, bytes, 0)
	}
	return accessCost(policy, bytes, policy.WriteBandwidthGBs)
}

func accessCost(policy *ir.SRAMIOPolicy, bytes int64, bandwidthGBs float64) AccessCost {
	if policy == nil || bytes <= 0 {
		return AccessCost{}
	}
	granules := granuleCount(policy, bytes)
	cycles := policy.AccessLatencyCycles * granules
	if bandwidthGBs > 0 {
		cycles += int64(float64(bytes) / (bandwidthGBs * 1e9))
	}
	return AccessCost{
		Cycles:   cycles,
		EnergyPJ: float64(granules) * policy.AccessEnergyPJ,
	}
}

// granuleCount returns ceil(bytes / granule_bytes), defaulting to one
// granule per access when GranuleBytes is unconfigured.
func granuleCount(policy *ir.SRAMIOPolicy, bytes int64) int64 {
	if policy.GranuleBytes <= 0 {
		return 1
	}
	n := bytes / policy.GranuleBytes
	if bytes%policy.GranuleBytes != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
