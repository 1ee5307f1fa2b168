// Package config loads the three documents named at the core boundary
// (§6): an OperatorGraph, a HardwareConfig, and optimization hints. JSON
// is the primary wire format (§6: "can be driven from JSON documents");
// hardware configs and hints additionally accept YAML, matching the
// teacher's YAML-first habit for hardware/accelerator config files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nerf-sim/nerf-sim/ir"
)

// LoadOperatorGraph reads and parses an OperatorGraph JSON document.
func LoadOperatorGraph(path string) (*ir.OperatorGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operator graph %q: %w", path, err)
	}

	var wire operatorGraphWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse operator graph JSON: %w", err)
	}

	graph := ir.NewOperatorGraph()
	for _, n := range wire.Nodes {
		graph.AddNode(n)
	}
	for _, e := range wire.Edges {
		graph.AddEdge(e.Src, e.Dst)
	}
	return graph, nil
}

// operatorGraphWire is the JSON wire shape for an OperatorGraph: an
// ordered node list (preserving insertion order, unlike a JSON object
// keyed by id) plus the edge list.
type operatorGraphWire struct {
	Nodes []ir.OperatorNode `json:"nodes"`
	Edges []ir.Edge         `json:"edges"`
}

// LoadHardwareConfig reads a HardwareConfig from either JSON or YAML,
// selected by file extension (.yaml/.yml vs anything else), matching the
// teacher's habit of YAML-first hardware config with a JSON fallback.
func LoadHardwareConfig(path string) (ir.HardwareConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.HardwareConfig{}, fmt.Errorf("read hardware config %q: %w", path, err)
	}

	var cfg ir.HardwareConfig
	if isYAML(path) {
		// ir.HardwareConfig carries json tags only, so the YAML document is
		// decoded generically and re-encoded as JSON to bind through them.
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return ir.HardwareConfig{}, fmt.Errorf("parse hardware config YAML: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return ir.HardwareConfig{}, fmt.Errorf("parse hardware config YAML: %w", err)
		}
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ir.HardwareConfig{}, fmt.Errorf("parse hardware config: %w", err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

// HintRecord is one node's optimization hints (§6): a small record of
// boolean/ratio fields, keyed by node id or a base-name prefix.
type HintRecord struct {
	ActiveSamplesRatio *float64 `json:"active_samples_ratio,omitempty" yaml:"active_samples_ratio,omitempty"`
	HashIndexActivity  *bool    `json:"hash_index_activity,omitempty" yaml:"hash_index_activity,omitempty"`
	LowBitObserved     *bool    `json:"low_bit_observed,omitempty" yaml:"low_bit_observed,omitempty"`
}

// LoadHints reads a mapping from node id (or base-name prefix) to
// HintRecord, from either JSON or YAML by extension.
func LoadHints(path string) (map[string]HintRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read optimization hints %q: %w", path, err)
	}

	hints := make(map[string]HintRecord)
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &hints); err != nil {
			return nil, fmt.Errorf("parse optimization hints YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &hints); err != nil {
			return nil, fmt.Errorf("parse optimization hints JSON: %w", err)
		}
	}
	return hints, nil
}
