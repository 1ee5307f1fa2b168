// Package mapping implements the Mapping Engine (§4.1): it assigns every
// OperatorNode in an OperatorGraph to exactly one HardwareUnit, producing a
// MappedIR.
package mapping

import "github.com/nerf-sim/nerf-sim/ir"

// desiredUnitType returns the hardware unit type an operator of the given
// taxonomy tag wants first, per the canonical type mapping table in §4.1.
func desiredUnitType(tag ir.Taxonomy) ir.Taxonomy {
	switch tag.Normalize() {
	case ir.Sampling:
		return ir.Sampling
	case ir.Encoding, ir.PositionalEncode:
		return ir.PositionalEncode
	case ir.HashEncode:
		return ir.HashEncode
	case ir.MLP:
		return ir.MLP
	case ir.Blending, ir.VolumeRendering:
		return ir.VolumeRendering
	default:
		return ir.FieldComputation
	}
}

// fallbackChain returns the FALLBACK_CHAIN for the given taxonomy tag, in
// priority order, per §4.1's table.
func fallbackChain(tag ir.Taxonomy) []ir.Taxonomy {
	switch tag.Normalize() {
	case ir.Sampling:
		return []ir.Taxonomy{ir.VolumeRendering, ir.FieldComputation}
	case ir.Encoding, ir.PositionalEncode:
		return []ir.Taxonomy{ir.HashEncode, ir.FieldComputation}
	case ir.HashEncode:
		return []ir.Taxonomy{ir.PositionalEncode, ir.FieldComputation}
	case ir.MLP:
		return []ir.Taxonomy{ir.FieldComputation}
	case ir.FieldComputation:
		return []ir.Taxonomy{ir.FieldComputation}
	case ir.Blending, ir.VolumeRendering:
		return []ir.Taxonomy{ir.Blending, ir.FieldComputation}
	default:
		return []ir.Taxonomy{ir.VolumeRendering, ir.PositionalEncode}
	}
}
