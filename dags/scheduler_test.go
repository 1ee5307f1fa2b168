package dags

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nerf-sim/nerf-sim/ir"
)

func node(id, hwUnit string, duration int64) ir.OpScheduledNode {
	return ir.OpScheduledNode{
		Mapped: ir.MappedNode{
			Node:     ir.OperatorNode{ID: id, Taxonomy: ir.FieldComputation},
			HWUnitID: hwUnit,
		},
		Duration: duration,
	}
}

func irFrom(nodes []ir.OpScheduledNode, edges []ir.Edge) *ir.OpScheduledIR {
	out := ir.NewOpScheduledIR()
	for _, n := range nodes {
		out.AddNode(n)
	}
	out.Edges = edges
	return out
}

// GIVEN two FIELD_COMPUTATION nodes with no edges, mapped to distinct units
// WHEN scheduled
// THEN both start at 0 and total_cycles = max(dur_a, dur_b), matching S2.
func TestSchedule_S2_ParallelOnDistinctUnits(t *testing.T) {
	in := irFrom([]ir.OpScheduledNode{
		node("a", "u1", 10),
		node("b", "u2", 20),
	}, nil)

	sched, _, err := New(DefaultWeights()).Schedule(in)
	require.NoError(t, err)

	byID := entryByID(sched.Entries)
	require.Equal(t, int64(0), byID["a"].StartCycle)
	require.Equal(t, int64(0), byID["b"].StartCycle)
	require.Equal(t, int64(20), sched.TotalCycles)
}

// GIVEN two FIELD_COMPUTATION nodes with no edges sharing one unit
// WHEN scheduled
// THEN one runs at 0, the other at the first's finish, tie-broken
// lexicographically by node id, matching S3.
func TestSchedule_S3_ParallelOnSameUnit(t *testing.T) {
	// Equal durations give both nodes equal SC (0, no successors) and
	// equal CR (duration/avg_duration == 1), so their scores tie and the
	// node-id lexicographic tie-break is what actually decides order.
	in := irFrom([]ir.OpScheduledNode{
		node("a", "u1", 10),
		node("b", "u1", 10),
	}, nil)

	sched, _, err := New(DefaultWeights()).Schedule(in)
	require.NoError(t, err)

	byID := entryByID(sched.Entries)
	require.Equal(t, int64(0), byID["a"].StartCycle)
	require.Equal(t, int64(10), byID["b"].StartCycle)
	require.Equal(t, int64(20), sched.TotalCycles)
}

// GIVEN a diamond A -> {B, C} -> D with A,D on u1, B on u2, C on u3 and
// durations A=10,B=20,C=30,D=5
// WHEN scheduled
// THEN the literal S4 finish times hold and total_cycles = 45.
func TestSchedule_S4_Diamond(t *testing.T) {
	in := irFrom([]ir.OpScheduledNode{
		node("A", "u1", 10),
		node("B", "u2", 20),
		node("C", "u3", 30),
		node("D", "u1", 5),
	}, []ir.Edge{
		{Src: "A", Dst: "B"},
		{Src: "A", Dst: "C"},
		{Src: "B", Dst: "D"},
		{Src: "C", Dst: "D"},
	})

	sched, _, err := New(DefaultWeights()).Schedule(in)
	require.NoError(t, err)

	byID := entryByID(sched.Entries)
	require.Equal(t, int64(0), byID["A"].StartCycle)
	require.Equal(t, int64(10), byID["A"].FinishCycle())
	require.Equal(t, int64(10), byID["B"].StartCycle)
	require.Equal(t, int64(10), byID["C"].StartCycle)
	require.Equal(t, int64(30), byID["B"].FinishCycle())
	require.Equal(t, int64(40), byID["C"].FinishCycle())
	require.Equal(t, int64(40), byID["D"].StartCycle)
	require.Equal(t, int64(45), byID["D"].FinishCycle())
	require.Equal(t, int64(45), sched.TotalCycles)
}

func TestSchedule_Determinism(t *testing.T) {
	build := func() *ir.OpScheduledIR {
		return irFrom([]ir.OpScheduledNode{
			node("A", "u1", 10),
			node("B", "u2", 20),
			node("C", "u3", 30),
			node("D", "u1", 5),
		}, []ir.Edge{
			{Src: "A", Dst: "B"}, {Src: "A", Dst: "C"},
			{Src: "B", Dst: "D"}, {Src: "C", Dst: "D"},
		})
	}

	s := New(DefaultWeights())
	first, _, err := s.Schedule(build())
	require.NoError(t, err)
	second, _, err := s.Schedule(build())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSchedule_EmptyInput_NotAnError(t *testing.T) {
	sched, stats, err := New(DefaultWeights()).Schedule(ir.NewOpScheduledIR())
	require.NoError(t, err)
	require.Empty(t, sched.Entries)
	require.Equal(t, 0, stats.ReadyQueuePeakSize)
}

func TestSchedule_UnitExclusivity(t *testing.T) {
	in := irFrom([]ir.OpScheduledNode{
		node("a", "u1", 10),
		node("b", "u1", 20),
		node("c", "u1", 5),
	}, nil)

	sched, _, err := New(DefaultWeights()).Schedule(in)
	require.NoError(t, err)

	byUnit := map[string][]ir.SystemScheduleEntry{}
	for _, e := range sched.Entries {
		byUnit[e.HWUnitID] = append(byUnit[e.HWUnitID], e)
	}
	for _, entries := range byUnit {
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				a, b := entries[i], entries[j]
				overlap := a.StartCycle < b.FinishCycle() && b.StartCycle < a.FinishCycle()
				require.False(t, overlap, "entries %+v and %+v overlap on the same unit", a, b)
			}
		}
	}
}

func entryByID(entries []ir.SystemScheduleEntry) map[string]ir.SystemScheduleEntry {
	out := make(map[string]ir.SystemScheduleEntry, len(entries))
	for _, e := range entries {
		out[e.OpID] = e
	}
	return out
}

// GIVEN a Scheduler with Instrumented set to true
// WHEN Schedule runs over a non-empty input
// THEN Timing reports the validate, placement, and stats phases.
func TestSchedule_Instrumented_RecordsPhases(t *testing.T) {
	in := irFrom([]ir.OpScheduledNode{node("a", "u1", 10)}, nil)

	sched := New(DefaultWeights())
	sched.Instrumented = true
	_, _, err := sched.Schedule(in)
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, p := range sched.Timing().Phases {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"validate", "placement", "stats"}, names)
}
