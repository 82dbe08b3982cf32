// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xf

// Components is the vertex-format component presence mask.
//
// The bit layout is shared with the "components" uniform read by the
// generated vertex shader. Position is always present and has no bit.
type Components uint32

const (
	HasPosMtxIdx  Components = 1 << 1
	HasTexMtxIdx0 Components = 1 << 2
	HasNrm0       Components = 1 << 10
	HasNrm1       Components = 1 << 11
	HasNrm2       Components = 1 << 12
	HasCol0       Components = 1 << 13
	HasCol1       Components = 1 << 14
	HasUV0        Components = 1 << 15
)

// HasTexMtxIdx returns the per-vertex texture matrix index bit for texgen i.
func HasTexMtxIdx(i int) Components {
	return HasTexMtxIdx0 << uint(i)
}

// HasUV returns the raw texture coordinate bit for input i.
func HasUV(i int) Components {
	return HasUV0 << uint(i)
}

// Has reports whether all bits of c2 are present.
func (c Components) Has(c2 Components) bool {
	return c&c2 == c2
}

// Any reports whether any bit of c2 is present.
func (c Components) Any(c2 Components) bool {
	return c&c2 != 0
}
