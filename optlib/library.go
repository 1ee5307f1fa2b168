package optlib

import "github.com/nerf-sim/nerf-sim/ir"

// Library is the fixed table of named optimization strategies described in
// §4.2 and §9. A Library value is immutable after construction and safe
// for concurrent read-only use across multiple scheduler instances.
type Library struct {
	byName map[string]Strategy
	order  []string
}

// Default returns the Library containing every named strategy in §4.2:
// tile_culling, gradient_pruning, row_processing, frm_coalescing,
// bum_merging, early_ray_termination, sparse_radiance_warping, and one
// LOW_BIT-family entry. Strategy defaults are drawn from the parameter
// values named in the original research prototype (see DESIGN.md) where
// the spec itself is silent on exact numbers.
func Default() *Library {
	l := &Library{byName: make(map[string]Strategy)}
	l.register(Strategy{
		Name: "tile_culling", Type: Skip, Scope: Region, Criterion: Boundary,
		Tags:   []ir.Taxonomy{ir.Sampling, ir.Blending},
		Params: map[string]float64{}, // active_ratio has no library default: it must come from the active_samples_ratio hint (§4.1)
	})
	l.register(Strategy{
		Name: "gradient_pruning", Type: Skip, Scope: Element, Criterion: Threshold,
		Tags:   []ir.Taxonomy{ir.FieldComputation, ir.MLP},
		Params: map[string]float64{"p": 0.4},
	})
	l.register(Strategy{
		Name: "row_processing", Type: Reuse, Scope: Region, Criterion: Boundary,
		Tags:   []ir.Taxonomy{ir.HashEncode, ir.Encoding},
		Params: map[string]float64{"bundle_efficiency": 0.9},
	})
	l.register(Strategy{
		Name: "frm_coalescing", Type: Reuse, Scope: Element, Criterion: Boundary,
		Tags:   []ir.Taxonomy{ir.Encoding, ir.PositionalEncode},
		Params: map[string]float64{"coalesce_factor": 4},
	})
	l.register(Strategy{
		Name: "bum_merging", Type: Reuse, Scope: Region, Criterion: Boundary,
		Tags:   []ir.Taxonomy{ir.HashEncode},
		Params: map[string]float64{"merge_ratio": 0.6},
	})
	l.register(Strategy{
		Name: "early_ray_termination", Type: Skip, Scope: Element, Criterion: Threshold,
		Tags:   []ir.Taxonomy{ir.VolumeRendering},
		Params: map[string]float64{}, // termination_ratio has no library default: sourced from active_samples_ratio hint
	})
	l.register(Strategy{
		Name: "sparse_radiance_warping", Type: Reuse, Scope: Frame, Criterion: Threshold,
		Tags:   []ir.Taxonomy{ir.VolumeRendering},
		Params: map[string]float64{"reuse_ratio": 0.2},
	})
	l.register(Strategy{
		Name: "low_bit_quantization", Type: LowBit, Scope: Element, Criterion: Threshold,
		Tags:   []ir.Taxonomy{wildcardTag},
		Params: map[string]float64{"bit_reduction_factor": 0.5},
	})
	return l
}

func (l *Library) register(s Strategy) {
	l.byName[s.Name] = s
	l.order = append(l.order, s.Name)
}

// Applicable returns the strategies (in registration order, for
// determinism) whose tag set contains tag or the wildcard tag.
func (l *Library) Applicable(tag ir.Taxonomy) []Strategy {
	var out []Strategy
	for _, name := range l.order {
		s := l.byName[name]
		if s.appliesTo(tag) {
			out = append(out, s)
		}
	}
	return out
}

// ByName looks up a single strategy by name.
func (l *Library) ByName(name string) (Strategy, bool) {
	s, ok := l.byName[name]
	return s, ok
}
