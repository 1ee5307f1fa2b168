// Package optlib implements the Optimization Library referenced in §4.2: a
// fixed set of named strategies, each contributing a multiplicative factor
// to the roofline's compute term (s_comp) and/or memory term (r_bytes) for
// operators whose taxonomy tag the strategy applies to.
package optlib

import "github.com/nerf-sim/nerf-sim/ir"

// Type is the fundamental operation performed by a strategy.
type Type string

const (
	Reuse  Type = "REUSE"
	Skip   Type = "SKIP"
	LowBit Type = "LOW_BIT"
)

// Scope is the granularity at which a strategy is applied.
type Scope string

const (
	Element Scope = "ELEMENT"
	Region  Scope = "REGION"
	Frame   Scope = "FRAME"
)

// Criterion is the decision rule determining when a strategy fires.
type Criterion string

const (
	Boundary  Criterion = "BOUNDARY"
	Threshold Criterion = "THRESHOLD"
)

// wildcardTag matches every taxonomy, per §4.2: "the applicable-tags set
// contains the node's taxonomy tag OR the wildcard tag".
const wildcardTag ir.Taxonomy = "*"

// Strategy is one named optimization-library entry (§4.2/§9).
type Strategy struct {
	Name      string
	Type      Type
	Scope     Scope
	Criterion Criterion
	Tags      []ir.Taxonomy
	Params    map[string]float64
}

func (s Strategy) appliesTo(tag ir.Taxonomy) bool {
	for _, t := range s.Tags {
		if t == wildcardTag || t == tag {
			return true
		}
	}
	return false
}

// param returns the named parameter, preferring hints over the strategy's
// own default, and reports whether any value (default or hint) was found
// at all. A strategy with no default and no matching hint is "missing"
// per §7's OptimizationStrategyMissingParam.
func (s Strategy) param(name string, hints map[string]float64) (float64, bool) {
	if v, ok := hints[name]; ok {
		return v, true
	}
	if v, ok := s.Params[name]; ok {
		return v, true
	}
	return 0, false
}
