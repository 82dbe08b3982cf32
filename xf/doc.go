// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package xf models the console GPU's transform unit (XF) memory.
//
// The transform unit is configured through a flat 32-bit address space:
// matrix rows and lights live in the low addresses, while the register
// block at 0x1000 holds packed bitfield words that select lighting,
// texture-coordinate generation and post-transform behavior.
//
// Packed words are only ever interpreted through [Field] descriptors.
// The same descriptors drive CPU-side decoding ([TexMtxInfo.SourceRow],
// [Memory.TexGen]) and the bitfieldExtract calls written into generated
// shaders, so both sides always agree on the layout.
//
//	var mem xf.Memory
//	_ = mem.Write(xf.RegNumTexGen, 2)
//	_ = mem.Write(xf.RegTexMtxInfo, uint32(xf.TexMtxInfoOf(xf.TexGen{
//	    SourceRow:  xf.SourceTex0,
//	    Projection: xf.ProjectionST,
//	})))
//	gens, err := mem.TexGens()
package xf
