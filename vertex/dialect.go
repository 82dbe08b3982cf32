// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"github.com/gogpu/ubershader/code"
	"github.com/gogpu/ubershader/host"
)

// dialect holds the parts of the program that differ per shading language.
type dialect interface {
	// writePrelude writes everything before the common header.
	writePrelude(w *code.Builder)
	uniformBlockOpen() string
	// semantics reports whether struct members carry semantics.
	semantics() bool
	// writeEntry writes inputs, outputs and the opening of main.
	writeEntry(w *code.Builder, uid Uid)
	posIndex() string
	loopAttr() string
	// writeExit writes the output copy and closes main.
	writeExit(w *code.Builder, uid Uid)
}

func newDialect(hc host.Config) (dialect, error) {
	if err := hc.Validate(); err != nil {
		return nil, &Error{Kind: ErrInvalidHost, Message: err.Error(), Err: err}
	}
	if hc.Dialect() == host.DialectHLSL {
		return hlslDialect{hc: hc}, nil
	}
	return glslDialect{hc: hc}, nil
}

// glslDialect emits GLSL for OpenGL and Vulkan.
type glslDialect struct {
	hc host.Config
}

func (d glslDialect) vulkan() bool { return d.hc.API == host.APIVulkan }

// outputBlock reports whether outputs go through an interface block.
// Vulkan always uses one.
func (d glslDialect) outputBlock() bool {
	return d.hc.GeometryShaders || d.vulkan()
}

var glslTypeDefines = [...][2]string{
	{"float2", "vec2"},
	{"float3", "vec3"},
	{"float4", "vec4"},
	{"uint2", "uvec2"},
	{"uint3", "uvec3"},
	{"uint4", "uvec4"},
	{"int2", "ivec2"},
	{"int3", "ivec3"},
	{"int4", "ivec4"},
	{"frac", "fract"},
	{"lerp", "mix"},
}

func (d glslDialect) writePrelude(w *code.Builder) {
	v := d.hc.ShadingVersion()
	w.Linef("#version %s", v)
	if d.hc.BindingLayout && !d.vulkan() && !v.SupportsBindingLayout() && !v.ES {
		w.Line("#extension GL_ARB_shading_language_420pack : enable")
	}
	if v.ES {
		w.Line("precision highp float;")
		w.Line("precision highp int;")
	}
	w.Line("")
	w.Line("#define ATTRIBUTE_LOCATION(x) layout(location = x)")
	switch {
	case d.vulkan():
		w.Line("#define VARYING_LOCATION(x) layout(location = x)")
		w.Line("#define UBO_BINDING(packing, x) layout(packing, set = 0, binding = (x - 1))")
	case d.hc.BindingLayout:
		w.Line("#define VARYING_LOCATION(x)")
		w.Line("#define UBO_BINDING(packing, x) layout(packing, binding = x)")
	default:
		w.Line("#define VARYING_LOCATION(x)")
		w.Line("#define UBO_BINDING(packing, x) layout(packing)")
	}
	w.Line("")
	for _, td := range glslTypeDefines {
		w.Linef("#define %s %s", td[0], td[1])
	}
	w.Line("")
}

func (glslDialect) uniformBlockOpen() string {
	return "UBO_BINDING(std140, 2) uniform VSBlock {"
}

func (glslDialect) semantics() bool { return false }

func (d glslDialect) writeEntry(w *code.Builder, uid Uid) {
	w.Linef("ATTRIBUTE_LOCATION(%d) in float4 rawpos;", slotPosition)
	w.Linef("ATTRIBUTE_LOCATION(%d) in uint4 posmtx;", slotPosMtx)
	for i := range 3 {
		w.Linef("ATTRIBUTE_LOCATION(%d) in float3 rawnorm%d;", slotNormal0+i, i)
	}
	for i := range 2 {
		w.Linef("ATTRIBUTE_LOCATION(%d) in float4 rawcolor%d;", slotColor0+i, i)
	}
	for i := range MaxTexGens {
		w.Linef("ATTRIBUTE_LOCATION(%d) in float3 rawtex%d;", slotTexCoord0+i, i)
	}
	w.Line("")

	if d.outputBlock() {
		w.Line("VARYING_LOCATION(0) out VertexData {")
		w.Indent()
		writeOutputMembers(w, outputMembers(uid, d.hc, true), interpolationQualifier(d.hc, true), false)
		w.Unindent()
		w.Line("} vs;")
	} else {
		out := "out"
		if q := interpolationQualifier(d.hc, false); q != "" {
			out = q + " out"
		}
		n := int(uid.NumTexGens)
		switch {
		case n < packedTexGens:
			for i := range MaxTexGens {
				w.Linef("%s float3 tex%d;", out, i)
			}
			w.Linef("%s float4 clipPos;", out)
			if uid.PerPixelLighting {
				w.Linef("%s float4 Normal;", out)
			}
		case uid.PerPixelLighting:
			for i := range MaxTexGens {
				w.Linef("%s float4 tex%d;", out, i)
			}
		default:
			for i := range n {
				if i < 4 {
					w.Linef("%s float4 tex%d;", out, i)
				} else {
					w.Linef("%s float3 tex%d;", out, i)
				}
			}
		}
		w.Linef("%s float4 colors_0;", out)
		w.Linef("%s float4 colors_1;", out)
	}
	w.Line("")
	w.Line("void main()")
	w.Line("{")
}

func (glslDialect) posIndex() string { return "int(posmtx.r)" }

func (glslDialect) loopAttr() string { return "" }

func (d glslDialect) writeExit(w *code.Builder, uid Uid) {
	n := int(uid.NumTexGens)
	if d.outputBlock() {
		for _, m := range outputMembers(uid, d.hc, true) {
			w.Linef("vs.%s = o.%s;", m.name, m.name)
		}
	} else {
		switch {
		case n < packedTexGens:
			for i := range MaxTexGens {
				if i < n {
					w.Linef("tex%d.xyz = o.tex%d.xyz;", i, i)
				} else {
					w.Linef("tex%d.xyz = float3(0.0, 0.0, 0.0);", i)
				}
			}
			w.Line("clipPos = o.clipPos;")
			if uid.PerPixelLighting {
				w.Line("Normal = o.Normal;")
			}
		case uid.PerPixelLighting:
			for i := range MaxTexGens {
				w.Linef("tex%d = o.tex%d;", i, i)
			}
		default:
			for i := range n {
				if i < 4 {
					w.Linef("tex%d = o.tex%d;", i, i)
				} else {
					w.Linef("tex%d = o.tex%d.xyz;", i, i)
				}
			}
		}
		w.Line("colors_0 = o.colors_0;")
		w.Line("colors_1 = o.colors_1;")
	}

	if d.hc.DepthClamp {
		w.Line("gl_ClipDistance[0] = o.clipDist.x;")
		w.Line("gl_ClipDistance[1] = o.clipDist.y;")
	}

	// Vulkan clip space has Y pointing down.
	if d.vulkan() {
		w.Line("gl_Position = float4(o.pos.x, -o.pos.y, o.pos.z, o.pos.w);")
	} else {
		w.Line("gl_Position = o.pos;")
	}
	w.Unindent()
	w.Line("}")
}

// hlslDialect emits HLSL for Direct3D 11.
type hlslDialect struct {
	hc host.Config
}

func (hlslDialect) writePrelude(*code.Builder) {}

func (hlslDialect) uniformBlockOpen() string { return "cbuffer VSBlock {" }

func (hlslDialect) semantics() bool { return true }

func (hlslDialect) writeEntry(w *code.Builder, _ Uid) {
	w.Line("VS_OUTPUT main(")
	w.Indent()
	for i := range 3 {
		w.Linef("float3 rawnorm%d : NORMAL%d,", i, i)
	}
	for i := range 2 {
		w.Linef("float4 rawcolor%d : COLOR%d,", i, i)
	}
	for i := range MaxTexGens {
		w.Linef("float3 rawtex%d : TEXCOORD%d,", i, i)
	}
	w.Line("float4 posmtx : BLENDINDICES,")
	w.Line("float4 rawpos : POSITION) {")
	w.Unindent()
}

func (hlslDialect) posIndex() string { return "int(round(posmtx.x * 255.0))" }

func (hlslDialect) loopAttr() string { return "[loop] " }

func (hlslDialect) writeExit(w *code.Builder, _ Uid) {
	w.Line("return o;")
	w.Unindent()
	w.Line("}")
}
