package ir

// MappedNode wraps an OperatorNode with its assigned hardware unit (§3).
type MappedNode struct {
	Node       OperatorNode
	HWUnitID   string
	Attributes map[string]string
}

// MappedIR is the OperatorGraph after every node has been bound to a unit
// (§3). Edges are copied unchanged from the source OperatorGraph.
type MappedIR struct {
	Nodes map[string]MappedNode
	Order []string
	Edges []Edge
}

// NewMappedIR returns an empty MappedIR.
func NewMappedIR() *MappedIR {
	return &MappedIR{Nodes: make(map[string]MappedNode)}
}

// AddNode inserts a mapped node, recording insertion order once per id.
func (m *MappedIR) AddNode(n MappedNode) {
	if _, exists := m.Nodes[n.Node.ID]; !exists {
		m.Order = append(m.Order, n.Node.ID)
	}
	m.Nodes[n.Node.ID] = n
}

// Successors returns, for every node id, the ids it has an edge pointing
// to, in edge-insertion order.
func (m *MappedIR) Successors() map[string][]string {
	succ := make(map[string][]string, len(m.Nodes))
	for _, e := range m.Edges {
		succ[e.Src] = append(succ[e.Src], e.Dst)
	}
	return succ
}

// Predecessors returns, for every node id, the ids with an edge pointing
// into it, in edge-insertion order.
func (m *MappedIR) Predecessors() map[string][]string {
	preds := make(map[string][]string, len(m.Nodes))
	for _, e := range m.Edges {
		preds[e.Dst] = append(preds[e.Dst], e.Src)
	}
	return preds
}
