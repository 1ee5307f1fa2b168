package ir

// RooflineTerm identifies which roofline term dominated a node's duration.
type RooflineTerm string

const (
	ComputeBound RooflineTerm = "compute-bound"
	MemoryBound  RooflineTerm = "memory-bound"
)

// AppliedStrategy records one optimization-library strategy that was active
// for a node, and the factor it contributed.
type AppliedStrategy struct {
	Name       string  `json:"name"`
	SCompDelta float64 `json:"s_comp_delta"`
	RBytesDelta float64 `json:"r_bytes_delta"`
}

// OptimizationResult is the per-node optimization metadata record emitted
// by the operator-level scheduler (§4.2/§6): strategies applied, their
// factors, and which roofline term dominated.
type OptimizationResult struct {
	Applied        []AppliedStrategy `json:"applied"`
	SComp          float64           `json:"s_comp"`
	RBytes         float64           `json:"r_bytes"`
	Dominant       RooflineTerm      `json:"dominant"`
	ComputeCycles  int64             `json:"compute_cycles"`
	MemoryCycles   int64             `json:"memory_cycles"`
	MissingParams  []string          `json:"missing_params,omitempty"`
}

// Optimized reports whether any applied strategy had a non-identity
// factor, per §4.2's "optimized_operators" statistic definition.
func (r OptimizationResult) Optimized() bool {
	return r.SComp != 1 || r.RBytes != 1
}

// ResourceProfile is the per-node resource usage estimate threaded through
// to OpScheduledNode; n_op and v_off are the roofline inputs (§4.2).
type ResourceProfile struct {
	NOp  float64 `json:"n_op"`
	VOff float64 `json:"v_off"`
}

// OpScheduledNode wraps a MappedNode with its computed duration (§3).
type OpScheduledNode struct {
	Mapped             MappedNode
	StartCycle         int64
	Duration           int64
	EarliestReadyCycle int64
	Resource           ResourceProfile
	Optimization       OptimizationResult
}

// OpScheduledIR is the MappedIR after every node has a duration (§3).
type OpScheduledIR struct {
	Nodes map[string]OpScheduledNode
	Order []string
	Edges []Edge
}

// NewOpScheduledIR returns an empty OpScheduledIR.
func NewOpScheduledIR() *OpScheduledIR {
	return &OpScheduledIR{Nodes: make(map[string]OpScheduledNode)}
}

// AddNode inserts a scheduled node, recording insertion order once per id.
func (o *OpScheduledIR) AddNode(n OpScheduledNode) {
	id := n.Mapped.Node.ID
	if _, exists := o.Nodes[id]; !exists {
		o.Order = append(o.Order, id)
	}
	o.Nodes[id] = n
}

// Successors returns, for every node id, the ids it has an edge pointing
// to, in edge-insertion order.
func (o *OpScheduledIR) Successors() map[string][]string {
	succ := make(map[string][]string, len(o.Nodes))
	for _, e := range o.Edges {
		succ[e.Src] = append(succ[e.Src], e.Dst)
	}
	return succ
}

// Predecessors returns, for every node id, the ids with an edge pointing
// into it, in edge-insertion order.
func (o *OpScheduledIR) Predecessors() map[string][]string {
	preds := make(map[string][]string, len(o.Nodes))
	for _, e := range o.Edges {
		preds[e.Dst] = append(preds[e.Dst], e.Src)
	}
	return preds
}
