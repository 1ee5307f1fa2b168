package config

import (
	"strings"

	"github.com/nerf-sim/nerf-sim/ir"
	"github.com/nerf-sim/nerf-sim/mapping"
)

// Resolve looks up a HintRecord for a node id: first by exact id, then by
// the longest registered key that is a prefix of id, per §6's "keyed by
// node id (or a base-name prefix)".
func Resolve(hints map[string]HintRecord, nodeID string) (HintRecord, bool) {
	if h, ok := hints[nodeID]; ok {
		return h, true
	}
	var best string
	var bestHint HintRecord
	found := false
	for prefix, h := range hints {
		if strings.HasPrefix(nodeID, prefix) && len(prefix) > len(best) {
			best, bestHint, found = prefix, h, true
		}
	}
	return bestHint, found
}

// ToMappingHints converts a HintRecord into mapping.Hints for use with
// mapping.Engine.MapWithHints.
func (h HintRecord) ToMappingHints() mapping.Hints {
	return mapping.Hints{
		HashIndexActivity:  h.HashIndexActivity,
		LowBitObserved:     h.LowBitObserved,
		ActiveSamplesRatio: h.ActiveSamplesRatio,
	}
}

// BuildMappingHints resolves a hint document against every node in graph
// (exact id, then longest-prefix match) and returns the per-node
// mapping.Hints map ready for mapping.Engine.MapWithHints.
func BuildMappingHints(graph *ir.OperatorGraph, hints map[string]HintRecord) map[string]mapping.Hints {
	out := make(map[string]mapping.Hints, len(graph.Order))
	for _, id := range graph.Order {
		if h, ok := Resolve(hints, id); ok {
			out[id] = h.ToMappingHints()
		}
	}
	return out
}
