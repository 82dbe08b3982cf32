// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"fmt"

	"github.com/gogpu/ubershader/code"
	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/xf"
)

// Uniform names in the VSBlock uniform block.
const (
	uniformPosNormalMatrix = "cpnmtx"
	uniformProjection      = "cproj"
	uniformMaterials       = "cmtrl"
	uniformLights          = "clights"
	uniformTexMatrices     = "ctexmtx"
	uniformTransformMatrix = "ctrmtx"
	uniformNormalMatrices  = "cnmtx"
	uniformPostMatrices    = "cpostmtx"
	uniformDepthParams     = "cdepth"
	uniformViewParams      = "cviewparams"
)

// Attribute slots.
const (
	slotPosition  = 0
	slotPosMtx    = 1
	slotNormal0   = 2
	slotColor0    = 5
	slotTexCoord0 = 8
)

// Output slot packing switches at this texgen count: below it every
// texcoord is a float3 and clip position and normal get their own slots.
const packedTexGens = 7

// bitfieldExtract returns the extract expression for field f of src.
func bitfieldExtract(src string, f xf.Field) string {
	return fmt.Sprintf("bitfieldExtract(%s, %d, %d)", src, f.Start, f.Bits)
}

// lit returns the unsigned literal of a component mask.
func lit(c xf.Components) string {
	return fmt.Sprintf("%du", uint32(c))
}

// interpolationQualifier returns the qualifier applied to outputs.
// Inside an output block without binding layout support the storage
// qualifier has to be repeated on each member.
func interpolationQualifier(hc host.Config, inBlock bool) string {
	if !hc.MSAA {
		return ""
	}
	if inBlock && !hc.BindingLayout {
		if hc.SSAA {
			return "sample out"
		}
		return "centroid out"
	}
	if hc.SSAA {
		return "sample"
	}
	return "centroid"
}

// outputMember is one field of VS_OUTPUT.
type outputMember struct {
	typ      string
	name     string
	semantic string
}

// outputMembers returns the VS_OUTPUT layout for uid.
//
// Up to six texgens every texcoord slot is a float3 and clip position and
// normal have slots of their own. From seven on, those values are packed
// into the w components of the texcoords.
func outputMembers(uid Uid, hc host.Config, inBlock bool) []outputMember {
	m := []outputMember{
		{"float4", "pos", "SV_Position"},
		{"float4", "colors_0", "COLOR0"},
		{"float4", "colors_1", "COLOR1"},
	}
	if uid.NumTexGens < packedTexGens {
		for i := range MaxTexGens {
			m = append(m, outputMember{"float3", fmt.Sprintf("tex%d", i), fmt.Sprintf("TEXCOORD%d", i)})
		}
		m = append(m, outputMember{"float4", "clipPos", fmt.Sprintf("TEXCOORD%d", MaxTexGens)})
		if uid.PerPixelLighting {
			m = append(m, outputMember{"float4", "Normal", fmt.Sprintf("TEXCOORD%d", MaxTexGens+1)})
		}
	} else {
		n := int(uid.NumTexGens)
		if uid.PerPixelLighting {
			n = MaxTexGens
		}
		for i := range n {
			typ := "float3"
			if uid.PerPixelLighting || i < 4 {
				typ = "float4"
			}
			m = append(m, outputMember{typ, fmt.Sprintf("tex%d", i), fmt.Sprintf("TEXCOORD%d", i)})
		}
	}
	if hc.DepthClamp && !inBlock {
		m = append(m, outputMember{"float2", "clipDist", "SV_ClipDistance0"})
	}
	return m
}

// writeOutputMembers writes VS_OUTPUT member declarations.
func writeOutputMembers(w *code.Builder, members []outputMember, qualifier string, semantics bool) {
	prefix := ""
	if qualifier != "" {
		prefix = qualifier + " "
	}
	for _, m := range members {
		if semantics {
			w.Linef("%s%s %s : %s;", prefix, m.typ, m.name, m.semantic)
		} else {
			w.Linef("%s%s %s;", prefix, m.typ, m.name)
		}
	}
}

// writeUniforms writes the VSBlock members.
func writeUniforms(w *code.Builder) {
	w.Linef("float4 %s[6];", uniformPosNormalMatrix)
	w.Linef("float4 %s[4];", uniformProjection)
	w.Linef("int4 %s[4];", uniformMaterials)
	w.Linef("Light %s[%d];", uniformLights, xf.NumLights)
	w.Linef("float4 %s[24];", uniformTexMatrices)
	w.Linef("float4 %s[64];", uniformTransformMatrix)
	w.Linef("float4 %s[32];", uniformNormalMatrices)
	w.Linef("float4 %s[64];", uniformPostMatrices)
	w.Linef("float4 %s;", uniformDepthParams)
	w.Linef("float4 %s;", uniformViewParams)
	w.Linef("uint4 xfmem_pack1[%d];", MaxTexGens)
	w.Line("#define xfmem_texMtxInfo(i) (xfmem_pack1[(i)].x)")
	w.Line("#define xfmem_postMtxInfo(i) (xfmem_pack1[(i)].y)")
	w.Line("#define xfmem_color(i) (xfmem_pack1[(i)].z)")
	w.Line("#define xfmem_alpha(i) (xfmem_pack1[(i)].w)")
	w.Line("uint xfmem_dualTexInfo;")
	w.Line("uint xfmem_numColorChans;")
	w.Line("uint components;")
}

const lightStruct = `struct Light {
  int4 color;
  float4 cosatt;
  float4 distatt;
  float4 pos;
  float4 dir;
};`

// writeHeader writes the comment, Light struct and uniform block.
func writeHeader(w *code.Builder, d dialect) {
	w.Line("// Vertex UberShader")
	w.Line("")
	w.Lines(lightStruct)
	w.Line("")
	w.Line(d.uniformBlockOpen())
	w.Indent()
	writeUniforms(w)
	w.Unindent()
	w.Line("};")
	w.Line("")
}

// writeOutputStruct writes struct VS_OUTPUT.
func writeOutputStruct(w *code.Builder, uid Uid, hc host.Config, semantics bool) {
	w.Line("struct VS_OUTPUT {")
	w.Indent()
	writeOutputMembers(w, outputMembers(uid, hc, false), "", semantics)
	w.Unindent()
	w.Line("};")
	w.Line("")
}

const bitfieldExtractHelper = `uint bitfieldExtract(uint val, int off, int size) {
  // This built-in function is only supported in OpenGL 4.0+ and ES 3.1+
  // Microsoft's HLSL compiler automatically optimises this to a bitfield extract instruction.
  uint mask = uint((1 << size) - 1);
  return uint(val >> off) & mask;
}`

// writeHelpers writes functions the host may lack.
func writeHelpers(w *code.Builder, hc host.Config) {
	if hc.BitfieldBuiltin() {
		return
	}
	w.Lines(bitfieldExtractHelper)
	w.Line("")
}

// writeLightingFunction writes CalculateLighting, which returns the
// integer contribution of one light.
func writeLightingFunction(w *code.Builder) {
	lights := uniformLights
	w.Line("int4 CalculateLighting(uint index, uint attnfunc, uint diffusefunc, float3 pos, float3 normal) {")
	w.Indent()
	w.Line("float3 ldir, h, cosAttn, distAttn;")
	w.Line("float dist, dist2, attn;")
	w.Line("")
	w.Line("switch (attnfunc) {")
	w.Linef("case %du: // no attenuation", xf.AttnNone)
	w.Linef("case %du: // directional", xf.AttnDir)
	w.Indent()
	w.Linef("ldir = normalize(%s[index].pos.xyz - pos.xyz);", lights)
	w.Line("attn = 1.0;")
	w.Line("if (length(ldir) == 0.0)")
	w.Line("  ldir = normal;")
	w.Line("break;")
	w.Line("")
	w.Unindent()
	w.Linef("case %du: // specular", xf.AttnSpec)
	w.Indent()
	w.Linef("ldir = normalize(%s[index].pos.xyz - pos.xyz);", lights)
	w.Linef("attn = (dot(normal, ldir) >= 0.0) ? max(0.0, dot(normal, %s[index].dir.xyz)) : 0.0;", lights)
	w.Linef("cosAttn = %s[index].cosatt.xyz;", lights)
	w.Line("if (diffusefunc == 0u) // no diffuse")
	w.Linef("  distAttn = %s[index].distatt.xyz;", lights)
	w.Line("else")
	w.Linef("  distAttn = normalize(%s[index].distatt.xyz);", lights)
	w.Line("attn = max(0.0, dot(cosAttn, float3(1.0, attn, attn*attn))) / dot(distAttn, float3(1.0, attn, attn*attn));")
	w.Line("break;")
	w.Line("")
	w.Unindent()
	w.Linef("case %du: // spot", xf.AttnSpot)
	w.Indent()
	w.Linef("ldir = %s[index].pos.xyz - pos.xyz;", lights)
	w.Line("dist2 = dot(ldir, ldir);")
	w.Line("dist = sqrt(dist2);")
	w.Line("ldir = ldir / dist;")
	w.Linef("attn = max(0.0, dot(ldir, %s[index].dir.xyz));", lights)
	w.Linef("attn = max(0.0, %s[index].cosatt.x + %s[index].cosatt.y * attn + %s[index].cosatt.z * attn * attn) / dot(%s[index].distatt.xyz, float3(1.0, dist, dist2));",
		lights, lights, lights, lights)
	w.Line("break;")
	w.Line("")
	w.Unindent()
	w.Line("default:")
	w.Indent()
	w.Line("attn = 1.0;")
	w.Line("ldir = normal;")
	w.Line("break;")
	w.Unindent()
	w.Line("}")
	w.Line("")
	w.Line("switch (diffusefunc) {")
	w.Linef("case %du: // none", xf.DiffuseNone)
	w.Indent()
	w.Linef("return int4(round(attn * float4(%s[index].color)));", lights)
	w.Line("")
	w.Unindent()
	w.Linef("case %du: // sign", xf.DiffuseSign)
	w.Indent()
	w.Linef("return int4(round(attn * dot(ldir, normal) * float4(%s[index].color)));", lights)
	w.Line("")
	w.Unindent()
	w.Linef("case %du: // clamp", xf.DiffuseClamp)
	w.Indent()
	w.Linef("return int4(round(attn * max(0.0, dot(ldir, normal)) * float4(%s[index].color)));", lights)
	w.Line("")
	w.Unindent()
	w.Line("default:")
	w.Indent()
	w.Line("return int4(0, 0, 0, 0);")
	w.Unindent()
	w.Line("}")
	w.Unindent()
	w.Line("}")
	w.Line("")
}

// writeColorSelect assigns a raw vertex color for the
// current channel, falling back to color 0 and then to opaque white.
func writeColorSelect(w *code.Builder, dst, swizzle, white string) {
	w.Linef("if ((components & (%s << chan)) != 0u)", lit(xf.HasCol0))
	w.Linef("  %s = %s(round(((chan == 0u) ? rawcolor0.%s : rawcolor1.%s) * 255.0));", dst, intType(swizzle), swizzle, swizzle)
	w.Linef("else if ((components & %s) != 0u)", lit(xf.HasCol0))
	w.Linef("  %s = %s(round(rawcolor0.%s * 255.0));", dst, intType(swizzle), swizzle)
	w.Line("else")
	w.Linef("  %s = %s;", dst, white)
}

func intType(swizzle string) string {
	if len(swizzle) == 1 {
		return "int"
	}
	return fmt.Sprintf("int%d", len(swizzle))
}

// writeLightAccumulate writes the light loop of one channel component.
func writeLightAccumulate(w *code.Builder, reg, dst, swizzle string) {
	w.Linef("uint light_mask = %s | (%s << 4u);",
		bitfieldExtract(reg, xf.LitLightMask0_3), bitfieldExtract(reg, xf.LitLightMask4_7))
	w.Linef("uint attnfunc = %s;", bitfieldExtract(reg, xf.LitAttnFunc))
	w.Linef("uint diffusefunc = %s;", bitfieldExtract(reg, xf.LitDiffuseFunc))
	w.Linef("for (uint light_index = 0u; light_index < %du; light_index++) {", xf.NumLights)
	w.Indent()
	w.Line("if ((light_mask & (1u << light_index)) != 0u)")
	w.Linef("  %s += CalculateLighting(light_index, attnfunc, diffusefunc, pos.xyz, _norm0).%s;", dst, swizzle)
	w.Unindent()
	w.Line("}")
}

// writeVertexLighting writes the per-channel lighting loop. It runs for
// the channel count held in xfmem_numColorChans; zero channels pass vertex
// colors through.
func writeVertexLighting(w *code.Builder, d dialect) {
	w.Line("// Lighting")
	w.Linef("%sfor (uint chan = 0u; chan < xfmem_numColorChans; chan++) {", d.loopAttr())
	w.Indent()
	w.Line("uint colorreg = xfmem_color(chan);")
	w.Line("uint alphareg = xfmem_alpha(chan);")
	w.Linef("int4 mat = %s[chan + 2u];", uniformMaterials)
	w.Line("int4 lacc = int4(255, 255, 255, 255);")
	w.Line("")

	w.Linef("if (%s != 0u) {", bitfieldExtract("colorreg", xf.LitMatSource))
	w.Indent()
	writeColorSelect(w, "mat.xyz", "xyz", "int3(255, 255, 255)")
	w.Unindent()
	w.Line("}")
	w.Line("")

	w.Linef("if (%s != 0u) {", bitfieldExtract("alphareg", xf.LitMatSource))
	w.Indent()
	writeColorSelect(w, "mat.w", "w", "255")
	w.Unindent()
	w.Line("} else {")
	w.Linef("  mat.w = %s[chan + 2u].w;", uniformMaterials)
	w.Line("}")
	w.Line("")

	w.Linef("if (%s != 0u) {", bitfieldExtract("colorreg", xf.LitEnableLighting))
	w.Indent()
	w.Linef("if (%s != 0u) {", bitfieldExtract("colorreg", xf.LitAmbSource))
	w.Indent()
	writeColorSelect(w, "lacc.xyz", "xyz", "int3(255, 255, 255)")
	w.Unindent()
	w.Line("} else {")
	w.Linef("  lacc.xyz = %s[chan].xyz;", uniformMaterials)
	w.Line("}")
	w.Line("")
	writeLightAccumulate(w, "colorreg", "lacc.xyz", "xyz")
	w.Unindent()
	w.Line("}")
	w.Line("")

	w.Linef("if (%s != 0u) {", bitfieldExtract("alphareg", xf.LitEnableLighting))
	w.Indent()
	w.Linef("if (%s != 0u) {", bitfieldExtract("alphareg", xf.LitAmbSource))
	w.Indent()
	writeColorSelect(w, "lacc.w", "w", "255")
	w.Unindent()
	w.Line("} else {")
	w.Linef("  lacc.w = %s[chan].w;", uniformMaterials)
	w.Line("}")
	w.Line("")
	writeLightAccumulate(w, "alphareg", "lacc.w", "w")
	w.Unindent()
	w.Line("}")
	w.Line("")

	w.Line("lacc = clamp(lacc, 0, 255);")
	w.Line("")
	w.Line("// Hopefully GPUs that can support dynamic indexing will optimize this.")
	w.Line("float4 lit_color = float4((mat * (lacc + (lacc >> 7))) >> 8) / 255.0;")
	w.Line("switch (chan) {")
	w.Line("case 0u: o.colors_0 = lit_color; break;")
	w.Line("case 1u: o.colors_1 = lit_color; break;")
	w.Line("}")
	w.Unindent()
	w.Line("}")
	w.Line("")

	w.Line("if (xfmem_numColorChans == 0u) {")
	w.Linef("  if ((components & %s) != 0u)", lit(xf.HasCol0))
	w.Line("    o.colors_0 = rawcolor0;")
	w.Line("  else")
	w.Line("    o.colors_0 = float4(1.0, 1.0, 1.0, 1.0);")
	w.Line("}")
	w.Line("if (xfmem_numColorChans < 2u) {")
	w.Linef("  if ((components & %s) != 0u)", lit(xf.HasCol1))
	w.Line("    o.colors_1 = rawcolor1;")
	w.Line("  else")
	w.Line("    o.colors_1 = o.colors_0;")
	w.Line("}")
	w.Line("")
}
