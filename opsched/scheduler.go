package opsched

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/nerf-sim/nerf-sim/instrument"
	"github.com/nerf-sim/nerf-sim/ir"
	"github.com/nerf-sim/nerf-sim/optlib"
)

// Scheduler is the operator-level scheduler (§4.2). A Scheduler instance
// owns a fixed optimization Library and hardware config; it is stateless
// across calls to Schedule (unlike mapping.Engine, there is no per-instance
// selection state to carry between runs).
type Scheduler struct {
	hw  ir.HardwareConfig
	lib *optlib.Library

	// Instrumented gates per-phase wall-clock timing capture (§5): a
	// per-instance boolean, off by default, matching mapping.Engine's and
	// dags.Scheduler's own instrumentation toggles.
	Instrumented bool
	timer        instrument.Timer
}

// New returns a Scheduler bound to the given hardware config and
// optimization library.
func New(hw ir.HardwareConfig, lib *optlib.Library) *Scheduler {
	if lib == nil {
		lib = optlib.Default()
	}
	return &Scheduler{hw: hw, lib: lib}
}

// Schedule computes a duration for every node of mapped and returns the
// resulting OpScheduledIR together with aggregate Stats.
func (s *Scheduler) Schedule(mapped *ir.MappedIR) (*ir.OpScheduledIR, Stats, error) {
	const op = "opsched.Schedule"

	s.timer = instrument.Timer{Enabled: s.Instrumented}
	s.timer.Start("roofline")

	out := ir.NewOpScheduledIR()
	out.Edges = mapped.Edges

	if len(mapped.Order) == 0 {
		s.timer.Stop()
		return out, Stats{}, nil // EmptyInput: not an error (§7)
	}

	clockHz := s.hw.ClockHz()
	byID := make(map[string]ir.HardwareUnit, len(s.hw.Units))
	for _, u := range s.hw.Units {
		byID[u.ID] = u
	}

	durations := make(map[string]int64, len(mapped.Order))
	speedups := make([]float64, 0, len(mapped.Order))
	unitCounts := make(map[string]int)
	unitDurationSum := make(map[string]int64)
	optimizedCount := 0
	missingParamWarnings := 0

	for _, id := range mapped.Order {
		n := mapped.Nodes[id]

		unit, ok := byID[n.HWUnitID]
		if !ok {
			return nil, Stats{}, ir.NewError(ir.KindUnknownNode, op, "node %q mapped to unknown unit %q", id, n.HWUnitID)
		}
		if unit.ThroughputOpS <= 0 {
			return nil, Stats{}, ir.NewError(ir.KindZeroThroughput, op, "hardware unit %q has throughput <= 0", unit.ID)
		}
		for _, t := range n.Node.Inputs {
			if err := t.Validate(); err != nil {
				return nil, Stats{}, ir.NewError(ir.KindNaNInputShape, op, "node %q: %s", id, err)
			}
		}

		nOp := numOps(n)
		vBytes := vOff(n)
		theta := thetaHW(unit, clockHz)
		bw := bHW(s.hw.MemoryHierarchy, clockHz)

		optResult := optlib.Apply(s.lib, n.Node.Taxonomy.Normalize(), n.Attributes)
		if len(optResult.MissingParams) > 0 {
			missingParamWarnings += len(optResult.MissingParams)
			logrus.Warnf("%s: node %q: missing optimization params %v, treated as neutral", op, id, optResult.MissingParams)
		}

		computeTerm := math.Ceil(nOp/theta) * optResult.SComp
		memoryTerm := math.Ceil(vBytes/bw) * optResult.RBytes

		dominant := ir.ComputeBound
		if memoryTerm > computeTerm {
			dominant = ir.MemoryBound
		}

		baseCycles := math.Max(computeTerm, memoryTerm)
		duration := int64(math.Round(baseCycles))
		if duration < 1 {
			duration = 1
		}
		computeCycles := int64(math.Round(computeTerm))
		memoryCycles := int64(0)
		if !math.IsInf(bw, 1) {
			memoryCycles = int64(math.Round(memoryTerm))
		}

		durations[id] = duration
		unitCounts[n.HWUnitID]++
		unitDurationSum[n.HWUnitID] += duration

		appliedResult := ir.OptimizationResult{
			Applied:       optResult.Applied,
			SComp:         optResult.SComp,
			RBytes:        optResult.RBytes,
			Dominant:      dominant,
			ComputeCycles: computeCycles,
			MemoryCycles:  memoryCycles,
			MissingParams: optResult.MissingParams,
		}
		if appliedResult.Optimized() {
			optimizedCount++
			speedups = append(speedups, baselineDuration(nOp, theta, vBytes, bw)/float64(duration))
		}

		out.AddNode(ir.OpScheduledNode{
			Mapped:             n,
			StartCycle:         0,
			Duration:           duration,
			EarliestReadyCycle: 0, // filled in by earliestReady below
			Resource:           ir.ResourceProfile{NOp: nOp, VOff: vBytes},
			Optimization:       appliedResult,
		})
	}

	s.timer.Start("earliest_ready")
	earliestReady(out, durations)
	s.timer.Stop()

	stats := Stats{
		TotalOperators:       len(mapped.Order),
		OptimizedOperators:   optimizedCount,
		GeometricMeanSpeedup: geometricMean(speedups),
		PerUnitOperatorCount: unitCounts,
		MissingParamWarnings: missingParamWarnings,
	}
	return out, stats, nil
}

// Timing returns the phase breakdown from the most recent Schedule call.
// Empty unless Instrumented was set before that call.
func (s *Scheduler) Timing() instrument.Report {
	return s.timer.Report()
}

// baselineDuration is the duration the node would have had with no
// optimization applied (s_comp = r_bytes = 1), used only for the
// geometric-mean speedup statistic.
func baselineDuration(nOp, theta, vBytes, bw float64) float64 {
	d := math.Max(math.Ceil(nOp/theta), math.Ceil(vBytes/bw))
	if d < 1 {
		d = 1
	}
	return d
}

// earliestReady fills in EarliestReadyCycle for every node: the maximum
// finish cycle over its predecessors, where a node's finish cycle is its
// own EarliestReadyCycle plus its duration, per §4.2 step 3. This is
// advisory input to dags, not a final start time.
func earliestReady(out *ir.OpScheduledIR, durations map[string]int64) {
	preds := out.Predecessors()
	finish := make(map[string]int64, len(out.Order))

	// Node insertion order is producer order, not necessarily topological;
	// predecessor finish times must be known before a node is visited.
	topo, err := ir.TopologicalOrder(out.Order, out.Successors())
	if err != nil {
		// Validated upstream (mapping/graph construction); unreachable in
		// a correctly formed OpScheduledIR, but fall back to insertion
		// order rather than panicking.
		topo = out.Order
	}

	for _, id := range topo {
		max := int64(0)
		for _, p := range preds[id] {
			if f := finish[p]; f > max {
				max = f
			}
		}
		n := out.Nodes[id]
		n.EarliestReadyCycle = max
		out.Nodes[id] = n
		finish[id] = max + durations[id]
	}
}
