package opsched

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nerf-sim/nerf-sim/ir"
	"github.com/nerf-sim/nerf-sim/optlib"
)

func unit(id string, typ ir.Taxonomy, throughput float64) ir.HardwareUnit {
	return ir.HardwareUnit{ID: id, Type: typ, ThroughputOpS: throughput, LatencyCycles: 1}
}

func mappedNode(id string, tag ir.Taxonomy, hwID string, dims []int64, attrs map[string]string) ir.MappedNode {
	desc := ir.TensorDescriptor{Dims: dims, ElementType: ir.ElementFloat32}
	return ir.MappedNode{
		Node: ir.OperatorNode{
			ID:       id,
			Taxonomy: tag,
			Inputs:   []ir.TensorDescriptor{desc},
			Outputs:  []ir.TensorDescriptor{desc},
		},
		HWUnitID:   hwID,
		Attributes: attrs,
	}
}

// GIVEN two nodes A(ENCODING)->B(FIELD_COMPUTATION) on 1GHz units with
// throughput 128e9 ops/s (n_op = 2*64 = 128, so n_op/Theta_hw == 1 cycle
// before any optimization-library factor) and a [1,64] tensor
// WHEN scheduled
// THEN each has duration 1 cycle, matching S1's literal scenario at the
// op-sched layer (dags assigns the actual start/total_cycles).
func TestSchedule_S1_MinimalLinearChain(t *testing.T) {
	hw := ir.HardwareConfig{
		ClockMHz: 1000,
		Units: []ir.HardwareUnit{
			unit("enc0", ir.PositionalEncode, 128e9),
			unit("fc0", ir.FieldComputation, 128e9),
		},
	}
	mapped := ir.NewMappedIR()
	mapped.AddNode(mappedNode("A", ir.Encoding, "enc0", []int64{1, 64}, nil))
	mapped.AddNode(mappedNode("B", ir.FieldComputation, "fc0", []int64{1, 64}, nil))
	mapped.Edges = []ir.Edge{{Src: "A", Dst: "B"}}

	sched := New(hw, optlib.Default())
	out, stats, err := sched.Schedule(mapped)
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Nodes["A"].Duration)
	require.Equal(t, int64(1), out.Nodes["B"].Duration)
	require.Equal(t, int64(0), out.Nodes["A"].EarliestReadyCycle)
	require.Equal(t, int64(1), out.Nodes["B"].EarliestReadyCycle)
	require.Equal(t, 2, stats.TotalOperators)
}

// GIVEN a single SAMPLING node with base compute cycles 100 and memory
// cycles 20 and active_samples_ratio = 0.5 (tile_culling)
// WHEN scheduled
// THEN duration = max(100*0.5, 20) = 50, matching S5 literally.
func TestSchedule_S5_OptimizationEffect(t *testing.T) {
	hw := ir.HardwareConfig{
		ClockMHz: 1000,
		Units: []ir.HardwareUnit{
			unit("samp0", ir.Sampling, 1e9), // theta = 1e9 / 1e9 = 1 op/cycle
		},
		MemoryHierarchy: &ir.MemoryHierarchy{MainMemoryBandwidthGBs: 20}, // 20 bytes/cycle
	}
	// [1,50] f32 tensors: n_op = 2*50 = 100 -> 100 compute cycles;
	// v_off = (50+50)*4 = 400 bytes -> 400/20 = 20 memory cycles.
	node := mappedNode("s0", ir.Sampling, "samp0", []int64{1, 50}, map[string]string{"active_samples_ratio": "0.5"})
	mapped := ir.NewMappedIR()
	mapped.AddNode(node)

	sched := New(hw, optlib.Default())
	out, _, err := sched.Schedule(mapped)
	require.NoError(t, err)

	n := out.Nodes["s0"]
	require.InDelta(t, 0.5, n.Optimization.SComp, 1e-9)
	require.Equal(t, int64(50), n.Duration)
}

// GIVEN a single FIELD_COMPUTATION node that is memory-bound
// WHEN scheduled
// THEN the optimization result is tagged memory-bound, matching S6.
func TestSchedule_S6_MemoryBoundNode(t *testing.T) {
	hw := ir.HardwareConfig{
		ClockMHz: 1000,
		Units:    []ir.HardwareUnit{unit("fc0", ir.FieldComputation, 1e12)},
		MemoryHierarchy: &ir.MemoryHierarchy{MainMemoryBandwidthGBs: 0.001},
	}
	node := mappedNode("c0", ir.FieldComputation, "fc0", []int64{1024, 1024}, nil)
	mapped := ir.NewMappedIR()
	mapped.AddNode(node)

	sched := New(hw, optlib.Default())
	out, _, err := sched.Schedule(mapped)
	require.NoError(t, err)
	require.Equal(t, ir.MemoryBound, out.Nodes["c0"].Optimization.Dominant)
}

func TestSchedule_ZeroThroughput(t *testing.T) {
	hw := ir.HardwareConfig{ClockMHz: 1000, Units: []ir.HardwareUnit{unit("fc0", ir.FieldComputation, 0)}}
	mapped := ir.NewMappedIR()
	mapped.AddNode(mappedNode("c0", ir.FieldComputation, "fc0", []int64{4}, nil))

	_, _, err := New(hw, optlib.Default()).Schedule(mapped)
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	require.Equal(t, ir.KindZeroThroughput, irErr.Kind)
}

func TestSchedule_NaNInputShape(t *testing.T) {
	hw := ir.HardwareConfig{ClockMHz: 1000, Units: []ir.HardwareUnit{unit("fc0", ir.FieldComputation, 1e9)}}
	mapped := ir.NewMappedIR()
	n := mappedNode("c0", ir.FieldComputation, "fc0", []int64{4}, nil)
	n.Node.Inputs = []ir.TensorDescriptor{{Dims: []int64{0}}}
	mapped.AddNode(n)

	_, _, err := New(hw, optlib.Default()).Schedule(mapped)
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	require.Equal(t, ir.KindNaNInputShape, irErr.Kind)
}

func TestSchedule_EmptyInput_NotAnError(t *testing.T) {
	hw := ir.HardwareConfig{ClockMHz: 1000, Units: []ir.HardwareUnit{unit("fc0", ir.FieldComputation, 1e9)}}
	out, stats, err := New(hw, optlib.Default()).Schedule(ir.NewMappedIR())
	require.NoError(t, err)
	require.Empty(t, out.Order)
	require.Equal(t, 0, stats.TotalOperators)
}

// GIVEN a Scheduler with Instrumented set to true
// WHEN Schedule runs over a non-empty input
// THEN Timing reports the roofline and earliest_ready phases.
func TestSchedule_Instrumented_RecordsPhases(t *testing.T) {
	hw := ir.HardwareConfig{ClockMHz: 1000, Units: []ir.HardwareUnit{unit("fc0", ir.FieldComputation, 1e9)}}
	mapped := ir.NewMappedIR()
	mapped.AddNode(mappedNode("a", ir.FieldComputation, "fc0", []int64{4}, nil))

	sched := New(hw, optlib.Default())
	sched.Instrumented = true
	_, _, err := sched.Schedule(mapped)
	require.NoError(t, err)

	names := make([]string, 0, 2)
	for _, p := range sched.Timing().Phases {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"roofline", "earliest_ready"}, names)
}
