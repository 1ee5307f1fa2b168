package dags

import (
	"container/heap"

	"github.com/nerf-sim/nerf-sim/instrument"
	"github.com/nerf-sim/nerf-sim/ir"
)

// Scheduler is the system-level scheduler (§4.3). Stateless across calls:
// every field is either a fixed configuration value or scratch state local
// to one Schedule invocation.
type Scheduler struct {
	weights Weights
	mem     *ir.MemoryHierarchy
	clockHz float64

	// Instrumented gates per-phase wall-clock timing capture (§5).
	Instrumented bool
	timer        instrument.Timer
}

// New returns a Scheduler configured with the given scoring weights. A
// zero Weights (both fields 0) is replaced with DefaultWeights.
func New(weights Weights) *Scheduler {
	if weights.Alpha == 0 && weights.Beta == 0 {
		weights = DefaultWeights()
	}
	return &Scheduler{weights: weights}
}

// WithMemoryBandwidthFloor enables the optional §4.3 post-pass: every
// node's duration is raised to the memory-bandwidth-bound floor, computed
// from the hardware's main-memory bandwidth and clock, before placement.
func (s *Scheduler) WithMemoryBandwidthFloor(mem *ir.MemoryHierarchy, clockHz float64) *Scheduler {
	s.mem = mem
	s.clockHz = clockHz
	return s
}

// Schedule runs DAGS over an OpScheduledIR and returns the resulting
// SystemSchedule and aggregate Stats.
func (s *Scheduler) Schedule(in *ir.OpScheduledIR) (*ir.SystemSchedule, Stats, error) {
	const op = "dags.Schedule"

	s.timer = instrument.Timer{Enabled: s.Instrumented}
	s.timer.Start("validate")

	if len(in.Order) == 0 {
		s.timer.Stop()
		return &ir.SystemSchedule{PerUnitFinishCycle: map[string]int64{}}, Stats{PerUnitUtilization: map[string]float64{}}, nil
	}

	succ := in.Successors()
	preds := in.Predecessors()

	for _, e := range in.Edges {
		if _, ok := in.Nodes[e.Src]; !ok {
			return nil, Stats{}, ir.NewError(ir.KindUnknownNode, op, "edge references unknown source node %q", e.Src)
		}
		if _, ok := in.Nodes[e.Dst]; !ok {
			return nil, Stats{}, ir.NewError(ir.KindUnknownNode, op, "edge references unknown destination node %q", e.Dst)
		}
	}

	sc, err := ir.TransitiveSuccessorCounts(in.Order, succ)
	if err != nil {
		return nil, Stats{}, ir.NewError(ir.KindCycleDetected, op, "%s", err)
	}

	floored := memoryBandwidthFloor(in.Nodes, s.mem, s.clockHz)
	nodes := make(map[string]ir.OpScheduledNode, len(in.Nodes))
	for id, n := range in.Nodes {
		n.Duration = floored[id]
		nodes[id] = n
	}

	avgDuration := avgDurationByUnit(nodes)

	s.timer.Start("placement")

	inDegree := make(map[string]int, len(in.Order))
	for _, id := range in.Order {
		inDegree[id] = len(preds[id])
	}

	hwAvailableAt := make(map[string]int64)
	finishTime := make(map[string]int64, len(in.Order))

	q := &readyQueue{}
	heap.Init(q)
	peakQueueSize := 0

	pushReady := func(id string) {
		n := nodes[id]
		item := &readyItem{
			id:            id,
			score:         s.weights.score(sc[id], criticalResourceImpact(n, avgDuration)),
			hwAvailableAt: hwAvailableAt[n.Mapped.HWUnitID],
		}
		heap.Push(q, item)
		if q.Len() > peakQueueSize {
			peakQueueSize = q.Len()
		}
	}

	for _, id := range in.Order {
		if inDegree[id] == 0 {
			pushReady(id)
		}
	}

	entries := make([]ir.SystemScheduleEntry, 0, len(in.Order))
	placed := make(map[string]bool, len(in.Order))
	unitDurationSum := make(map[string]int64)

	for q.Len() > 0 {
		item := heap.Pop(q).(*readyItem)
		v := item.id
		n := nodes[v]

		earliestPred := int64(0)
		for _, u := range preds[v] {
			if f := finishTime[u]; f > earliestPred {
				earliestPred = f
			}
		}
		start := earliestPred
		if avail := hwAvailableAt[n.Mapped.HWUnitID]; avail > start {
			start = avail
		}
		finish := start + n.Duration

		entries = append(entries, ir.SystemScheduleEntry{
			OpID:       v,
			HWUnitID:   n.Mapped.HWUnitID,
			StartCycle: start,
			Duration:   n.Duration,
		})
		finishTime[v] = finish
		hwAvailableAt[n.Mapped.HWUnitID] = finish
		placed[v] = true
		unitDurationSum[n.Mapped.HWUnitID] += n.Duration

		for _, w := range succ[v] {
			inDegree[w]--
			if inDegree[w] == 0 {
				pushReady(w)
			}
		}
	}

	if len(placed) != len(in.Order) {
		// TransitiveSuccessorCounts already rejects a true cycle above; a
		// node still blocked here indicates a dependency that can never be
		// satisfied (e.g. an edge structure the cycle check cannot see),
		// which is the distinct UnreachableNode condition from §4.3/§7.
		return nil, Stats{}, ir.NewError(ir.KindUnreachableNode, op, "%d of %d operators never became ready", len(in.Order)-len(placed), len(in.Order))
	}

	s.timer.Start("stats")

	totalCycles := int64(0)
	for _, e := range entries {
		if f := e.FinishCycle(); f > totalCycles {
			totalCycles = f
		}
	}

	perUnitUtil := make(map[string]float64, len(unitDurationSum))
	perUnitFinish := make(map[string]int64, len(hwAvailableAt))
	for unit, avail := range hwAvailableAt {
		perUnitFinish[unit] = avail
		if totalCycles > 0 {
			perUnitUtil[unit] = float64(unitDurationSum[unit]) / float64(totalCycles)
		}
	}
	for i := range entries {
		entries[i].Utilization = perUnitUtil[entries[i].HWUnitID]
	}

	avgUtil := averageUtilization(perUnitUtil)
	stats := Stats{
		SchedulingEfficiency:  schedulingEfficiency(unitDurationSum, totalCycles, len(hwAvailableAt)),
		ResourceBalanceFactor: resourceBalanceFactor(perUnitUtil),
		ReadyQueuePeakSize:    peakQueueSize,
		PerUnitUtilization:    perUnitUtil,
	}

	s.timer.Stop()

	return &ir.SystemSchedule{
		Entries:            entries,
		TotalCycles:        totalCycles,
		PerUnitFinishCycle: perUnitFinish,
		AverageUtilization: avgUtil,
	}, stats, nil
}

// Timing returns the phase breakdown from the most recent Schedule call.
// Empty unless Instrumented was set before that call.
func (s *Scheduler) Timing() instrument.Report {
	return s.timer.Report()
}
