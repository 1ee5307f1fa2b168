// Package opsched implements the Operator-Level Scheduler (§4.2): it turns
// a MappedIR into an OpScheduledIR by computing each node's duration under
// an optimization-aware roofline model, and records per-stage statistics.
package opsched

import (
	"math"
	"strconv"
	"strings"

	"github.com/nerf-sim/nerf-sim/hwio"
	"github.com/nerf-sim/nerf-sim/ir"
)

// mlpLayerSizeAttr, when present on a MappedNode's attributes, is a
// comma-separated list of "in:out" pairs used to compute the MLP op-type
// multiplier (§4.2: "MLP: sum of per-layer in·out").
const mlpLayerSizeAttr = "mlp_layer_sizes"

// numOps estimates n_op for a node: 2 * product(output dims), summed over
// the outputs, times the call count and an op-type multiplier. For MLP
// nodes with per-layer sizes recorded in attributes, the multiplier is the
// sum of per-layer in*out; otherwise it is 1.
func numOps(n ir.MappedNode) float64 {
	total := 0.0
	for _, out := range n.Node.Outputs {
		total += 2 * float64(out.NumElements())
	}
	total *= float64(n.Node.EffectiveCallCount())

	if n.Node.Taxonomy.Normalize() == ir.MLP {
		if mult := mlpMultiplier(n.Attributes); mult > 0 {
			return total * mult
		}
	}
	return total
}

// mlpMultiplier sums in*out across the mlp_layer_sizes attribute, if
// present and well formed. Returns 0 if absent or unparsable, signalling
// "use the default multiplier of 1" to the caller.
func mlpMultiplier(attrs map[string]string) float64 {
	raw, ok := attrs[mlpLayerSizeAttr]
	if !ok || raw == "" {
		return 0
	}
	sum := 0.0
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		in, out, ok := splitPair(pair)
		if !ok {
			continue
		}
		sum += in * out
	}
	return sum
}

func splitPair(pair string) (float64, float64, bool) {
	idx := strings.IndexByte(pair, ':')
	if idx < 0 {
		return 0, 0, false
	}
	in, errIn := strconv.ParseFloat(pair[:idx], 64)
	out, errOut := strconv.ParseFloat(pair[idx+1:], 64)
	if errIn != nil || errOut != nil {
		return 0, 0, false
	}
	return in, out, true
}

// vOff estimates v_off for a node: sum of input+output element counts,
// weighted by each tensor's element byte width, times the call count.
func vOff(n ir.MappedNode) float64 {
	total := int64(0)
	for _, in := range n.Node.Inputs {
		total += in.NumBytes()
	}
	for _, out := range n.Node.Outputs {
		total += out.NumBytes()
	}
	return float64(total) * float64(n.Node.EffectiveCallCount())
}

// thetaHW returns Θ_hw, the unit's throughput expressed in ops/cycle.
func thetaHW(unit ir.HardwareUnit, clockHz float64) float64 {
	if clockHz <= 0 {
		return 0
	}
	return unit.ThroughputOpS / clockHz
}

// bHW returns B_hw, the effective bytes/cycle available to a node from
// main-memory bandwidth. A zero or missing bandwidth yields an infinite
// B_hw (the memory term never dominates), matching the roofline's
// behavior when no bandwidth ceiling is configured.
func bHW(mem *ir.MemoryHierarchy, clockHz float64) float64 {
	if bpc := hwio.BytesPerCycle(mem, clockHz); bpc > 0 {
		return bpc
	}
	return math.Inf(1)
}
