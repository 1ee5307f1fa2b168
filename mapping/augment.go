package mapping

import (
	"github.com/sirupsen/logrus"

	"github.com/nerf-sim/nerf-sim/ir"
)

// leadingDims returns the first n dims of a node's first input tensor, used
// to compare the "(B, N)" leading shape between a dangling node and its
// candidate predecessor. Returns nil if the node has no inputs or fewer
// than n dims — such nodes never match.
func leadingDims(n ir.OperatorNode, k int) []int64 {
	if len(n.Inputs) == 0 || len(n.Inputs[0].Dims) < k {
		return nil
	}
	dims := make([]int64, k)
	copy(dims, n.Inputs[0].Dims[:k])
	return dims
}

func sameLeadingDims(a, b []int64) bool {
	if a == nil || b == nil || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AugmentEdges implements the optional deterministic edge augmentation
// heuristic described in §4.1: zero-in-degree FIELD_COMPUTATION nodes are
// linked to the latest ENCODING/SAMPLING node sharing their (B, N) leading
// dimensions; zero-in-degree BLENDING nodes are linked to the nearest
// FIELD_COMPUTATION node with matching leading dimensions. Producer-supplied
// edges are authoritative (§9 Open Questions): augmentation only adds
// predecessors to nodes that currently have none, and never runs if doing
// so would introduce a cycle.
func AugmentEdges(graph *ir.OperatorGraph) {
	inDegree := make(map[string]int, len(graph.Order))
	for _, e := range graph.Edges {
		inDegree[e.Dst]++
	}

	var proposed []ir.Edge

	for _, id := range graph.Order {
		node := graph.Nodes[id]
		if inDegree[id] != 0 {
			continue
		}
		tag := node.Taxonomy.Normalize()

		switch tag {
		case ir.FieldComputation:
			if src, ok := latestMatchingPredecessor(graph, id, ir.Encoding, ir.Sampling); ok {
				proposed = append(proposed, ir.Edge{Src: src, Dst: id})
			}
		case ir.Blending:
			if src, ok := latestMatchingPredecessor(graph, id, ir.FieldComputation); ok {
				proposed = append(proposed, ir.Edge{Src: src, Dst: id})
			}
		}
	}

	for _, e := range proposed {
		graph.Edges = append(graph.Edges, e)
		if _, err := ir.TopologicalOrder(graph.Order, graph.Successors()); err != nil {
			// Augmentation must not introduce cycles (§4.1); revert this
			// one edge and move on.
			graph.Edges = graph.Edges[:len(graph.Edges)-1]
			logrus.Warnf("mapping: skipped edge augmentation %s -> %s: would introduce a cycle", e.Src, e.Dst)
		}
	}
}

// latestMatchingPredecessor scans nodes in insertion order preceding dst,
// returning the id of the last node whose taxonomy (after normalization)
// is one of wantTags and whose (B, N) leading dims match dst's.
func latestMatchingPredecessor(graph *ir.OperatorGraph, dst string, wantTags ...ir.Taxonomy) (string, bool) {
	dstNode := graph.Nodes[dst]
	dstDims := leadingDims(dstNode, 2)
	if dstDims == nil {
		return "", false
	}

	want := make(map[ir.Taxonomy]bool, len(wantTags))
	for _, t := range wantTags {
		want[t] = true
	}

	dstIdx := indexOf(graph.Order, dst)
	best := ""
	for i := 0; i < dstIdx; i++ {
		id := graph.Order[i]
		n := graph.Nodes[id]
		if !want[n.Taxonomy.Normalize()] {
			continue
		}
		if sameLeadingDims(leadingDims(n, 2), dstDims) {
			best = id // keep scanning forward: "latest" matching node
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
