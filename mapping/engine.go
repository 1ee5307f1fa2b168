package mapping

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/nerf-sim/nerf-sim/instrument"
	"github.com/nerf-sim/nerf-sim/ir"
)

// Hints is a per-op attribute record recognized by MapWithHints (§4.1).
// All fields are optional; a zero value is neutral.
type Hints struct {
	HashIndexActivity  *bool
	LowBitObserved     *bool
	ActiveSamplesRatio *float64
}

// asAttributes converts a Hints record into the string-encoded attribute
// map copied verbatim into the MappedNode, per §4.1's "all string-encoded".
func (h Hints) asAttributes() map[string]string {
	attrs := make(map[string]string)
	if h.HashIndexActivity != nil {
		attrs["hash_index_activity"] = boolString(*h.HashIndexActivity)
	}
	if h.LowBitObserved != nil {
		attrs["low_bit_observed"] = boolString(*h.LowBitObserved)
	}
	if h.ActiveSamplesRatio != nil {
		attrs["active_samples_ratio"] = floatString(*h.ActiveSamplesRatio)
	}
	return attrs
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func floatString(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Engine is the Mapping Engine (§4.1). A single Engine instance owns a
// round-robin counter per hardware unit type; the counter is never reset
// automatically between Map/MapWithHints calls (§5), so constructing a new
// Engine is the supported way to get independent mapping runs.
type Engine struct {
	hw      ir.HardwareConfig
	byType  map[ir.Taxonomy][]ir.HardwareUnit
	rrIndex map[ir.Taxonomy]int

	// Instrumented gates per-phase wall-clock timing capture (§5).
	Instrumented bool
	timer        instrument.Timer
}

// Timing returns the phase breakdown from the most recent Map/MapWithHints
// call. Empty unless Instrumented was set before that call.
func (e *Engine) Timing() instrument.Report {
	return e.timer.Report()
}

// NewEngine constructs a Mapping Engine instance bound to one
// HardwareConfig.
func NewEngine(hw ir.HardwareConfig) *Engine {
	return &Engine{
		hw:      hw,
		byType:  hw.UnitsByType(),
		rrIndex: make(map[ir.Taxonomy]int),
	}
}

// Map assigns every node of graph to a hardware unit, producing a MappedIR.
func (e *Engine) Map(graph *ir.OperatorGraph) (*ir.MappedIR, error) {
	return e.mapWithHints(graph, nil)
}

// MapWithHints behaves like Map but copies a per-op Hints record into each
// MappedNode's Attributes map. hints is keyed by node id; a missing key is
// neutral.
func (e *Engine) MapWithHints(graph *ir.OperatorGraph, hints map[string]Hints) (*ir.MappedIR, error) {
	return e.mapWithHints(graph, hints)
}

func (e *Engine) mapWithHints(graph *ir.OperatorGraph, hints map[string]Hints) (*ir.MappedIR, error) {
	e.timer = instrument.Timer{Enabled: e.Instrumented}
	e.timer.Start("map")
	defer e.timer.Stop()

	if len(e.hw.Units) == 0 {
		return nil, ir.NewError(ir.KindNoCompatibleHardware, "mapping.Map", "hardware config has no units")
	}
	if err := graph.Validate("mapping.Map"); err != nil {
		return nil, err
	}

	out := ir.NewMappedIR()
	for _, id := range graph.Order {
		node := graph.Nodes[id]
		unit := e.selectUnit(node.Taxonomy)

		attrs := map[string]string{}
		if h, ok := hints[id]; ok {
			attrs = h.asAttributes()
		}

		out.AddNode(ir.MappedNode{
			Node:       node,
			HWUnitID:   unit.ID,
			Attributes: attrs,
		})
	}
	out.Edges = append(out.Edges, graph.Edges...)

	logrus.Debugf("mapping: mapped %d nodes across %d hardware units", len(out.Nodes), len(e.hw.Units))
	return out, nil
}

// selectUnit implements the §4.1 selection order: (1) exact match on
// desired type; (2) first fallback type with a non-empty unit list; (3)
// any FIELD_COMPUTATION unit; (4) the first unit in the config. Matching
// lists are round-robined per type using an engine-scoped counter.
func (e *Engine) selectUnit(tag ir.Taxonomy) ir.HardwareUnit {
	want := desiredUnitType(tag)
	if units := e.byType[want]; len(units) > 0 {
		return e.pickRoundRobin(want, units)
	}

	for _, fb := range fallbackChain(tag) {
		if units := e.byType[fb]; len(units) > 0 {
			return e.pickRoundRobin(fb, units)
		}
	}

	if units := e.byType[ir.FieldComputation]; len(units) > 0 {
		return e.pickRoundRobin(ir.FieldComputation, units)
	}

	logrus.Warnf("mapping: no compatible or fallback hardware for taxonomy %q; assigning first available unit", tag)
	return e.hw.Units[0]
}

// pickRoundRobin selects the next unit for typ from units, advancing the
// per-type counter so parallel siblings of the same type land on different
// units when multiple exist (§4.1).
func (e *Engine) pickRoundRobin(typ ir.Taxonomy, units []ir.HardwareUnit) ir.HardwareUnit {
	idx := e.rrIndex[typ] % len(units)
	e.rrIndex[typ]++
	return units[idx]
}
