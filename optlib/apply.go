package optlib

import (
	"strconv"

	"github.com/nerf-sim/nerf-sim/ir"
)

// Result is the outcome of applying every active strategy for a node's
// taxonomy tag: the combined multiplicative factors, the per-strategy
// breakdown, and any parameters that were missing and treated as neutral
// (§7's OptimizationStrategyMissingParam).
type Result struct {
	SComp         float64
	RBytes        float64
	Applied       []ir.AppliedStrategy
	MissingParams []string
}

// Apply computes the combined (s_comp, r_bytes) factor for a node of the
// given taxonomy, given its attribute hints (string-encoded, as produced by
// mapping.Hints.asAttributes). Every strategy whose tag set matches is
// "active" per §4.2 and contributes a (possibly identity) factor.
func Apply(lib *Library, tag ir.Taxonomy, attrs map[string]string) Result {
	res := Result{SComp: 1, RBytes: 1}

	activeSamplesRatio, hasActiveSamplesRatio := parseFloatAttr(attrs, "active_samples_ratio")
	lowBitObserved := parseBoolAttr(attrs, "low_bit_observed")

	for _, s := range lib.Applicable(tag) {
		dComp, dBytes := 1.0, 1.0

		switch s.Name {
		case "tile_culling":
			if hasActiveSamplesRatio {
				dComp = activeSamplesRatio
			} else {
				res.MissingParams = append(res.MissingParams, s.Name+".active_ratio")
			}

		case "gradient_pruning":
			p, _ := s.param("p", nil)
			dComp = 1 - p
			dBytes = 1 - p

		case "row_processing":
			bundleEff, _ := s.param("bundle_efficiency", nil)
			if bundleEff > 0 {
				dComp = 1 / bundleEff
			}

		case "frm_coalescing":
			coalesce, _ := s.param("coalesce_factor", nil)
			if coalesce > 0 {
				dBytes = 1 / coalesce
			}

		case "bum_merging":
			mergeRatio, _ := s.param("merge_ratio", nil)
			dBytes = mergeRatio

		case "early_ray_termination":
			if hasActiveSamplesRatio {
				dComp = activeSamplesRatio
			} else {
				res.MissingParams = append(res.MissingParams, s.Name+".termination_ratio")
			}

		case "sparse_radiance_warping":
			reuseRatio, _ := s.param("reuse_ratio", nil)
			dComp = 1 - reuseRatio
			dBytes = 1 - reuseRatio

		case "low_bit_quantization":
			if lowBitObserved {
				bitReduction, _ := s.param("bit_reduction_factor", nil)
				dBytes = bitReduction
			}
		}

		res.SComp *= dComp
		res.RBytes *= dBytes
		res.Applied = append(res.Applied, ir.AppliedStrategy{
			Name:        s.Name,
			SCompDelta:  dComp,
			RBytesDelta: dBytes,
		})
	}

	return res
}

func parseFloatAttr(attrs map[string]string, key string) (float64, bool) {
	raw, ok := attrs[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseBoolAttr(attrs map[string]string, key string) bool {
	raw, ok := attrs[key]
	if !ok {
		return false
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
