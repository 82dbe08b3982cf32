// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vertex generates the vertex uber-shader: one program that emulates
// the console's fixed-function transform, lighting and texture-coordinate
// generation for every configuration of the transform unit.
//
// Only the texgen count and the per-pixel lighting mode are baked into the
// generated text (the [Uid]). Everything else, including per-texgen source
// rows, generation types, projections, emboss parameters, post matrices and
// the vertex component mask, is read at run time from the VSBlock uniform
// block, which [Constants] mirrors on the CPU side.
//
// # Usage
//
//	uid, err := vertex.GetUid(&mem, components, cfg.PixelLighting)
//	if err != nil {
//	    return err
//	}
//	src, err := vertex.Generate(uid, cfg)
//
// # Dialects
//
// OpenGL and Vulkan hosts receive GLSL with a prelude of type macros so the
// body can be shared with the HLSL surface used for Direct3D 11. Branches
// that differ per API live behind a small dialect interface.
//
// Generation is pure: it touches no shared state, so independent uids can
// be generated concurrently.
package vertex
