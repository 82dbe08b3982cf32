// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"github.com/gogpu/ubershader/code"
	"github.com/gogpu/ubershader/xf"
)

// writeTexGens writes texture coordinate generation for uid.NumTexGens
// texgens. Per-texgen configuration is read from xfmem_texMtxInfo and
// xfmem_postMtxInfo at run time.
func writeTexGens(w *code.Builder, d dialect, uid Uid) {
	n := int(uid.NumTexGens)
	for i := range n {
		w.Linef("o.tex%d.xyz = float3(0.0, 0.0, 0.0);", i)
	}
	if n == 0 {
		return
	}

	w.Line("// Texture coordinate generation")
	if n == 1 {
		w.Line("{ const uint texgen = 0u;")
	} else {
		w.Linef("%sfor (uint texgen = 0u; texgen < %du; texgen++) {", d.loopAttr(), n)
	}
	w.Indent()

	w.Line("// Texcoord transforms")
	w.Line("float4 coord = float4(0.0, 0.0, 1.0, 1.0);")
	w.Line("uint texMtxInfo = xfmem_texMtxInfo(texgen);")
	writeSourceRow(w)

	w.Line("// Input form of AB11 sets z element to 1.0")
	w.Linef("if (%s == %du) // inputform == AB11", bitfieldExtract("texMtxInfo", xf.TexMtxInputForm), xf.InputAB11)
	w.Line("  coord.z = 1.0f;")
	w.Line("")

	w.Line("// first transformation")
	w.Linef("uint texgentype = %s;", bitfieldExtract("texMtxInfo", xf.TexMtxTexGenType))
	w.Line("float3 output_tex;")
	w.Line("switch (texgentype)")
	w.Line("{")
	writeEmboss(w, n)
	w.Linef("case %du: // color channel 0", xf.TexGenColorStrgbc0)
	w.Line("  output_tex.xyz = float3(o.colors_0.x, o.colors_0.y, 1.0);")
	w.Line("  break;")
	w.Line("")
	w.Linef("case %du: // color channel 1", xf.TexGenColorStrgbc1)
	w.Line("  output_tex.xyz = float3(o.colors_1.x, o.colors_1.y, 1.0);")
	w.Line("  break;")
	w.Line("")
	writeRegular(w, n)
	w.Line("}")
	w.Line("")

	writePostTransform(w)

	w.Line("// When q is 0, the console divides by zero and the result is clamped")
	w.Linef("if (texgentype == %du && output_tex.z == 0.0) // regular texgen", xf.TexGenRegular)
	w.Line("  output_tex.xy = clamp(output_tex.xy / 2.0f, float2(-1.0f,-1.0f), float2(1.0f,1.0f));")
	w.Line("")

	w.Line("// Hopefully GPUs that can support dynamic indexing will optimize this.")
	w.Line("switch (texgen) {")
	for i := range n {
		w.Linef("case %du: o.tex%d.xyz = output_tex; break;", i, i)
	}
	w.Line("}")

	w.Unindent()
	w.Line("}")
	w.Line("")
}

// writeSourceRow writes the switch loading coord from the source row.
// Rows whose attribute is absent leave coord at its default.
func writeSourceRow(w *code.Builder) {
	w.Linef("switch (%s) {", bitfieldExtract("texMtxInfo", xf.TexMtxSourceRow))
	w.Linef("case %du: // geometry", xf.SourceGeom)
	w.Line("  coord.xyz = rawpos.xyz;")
	w.Line("  break;")
	w.Line("")
	normals := [...]struct {
		row  xf.SourceRow
		has  xf.Components
		name string
	}{
		{xf.SourceNormal, xf.HasNrm0, "normal"},
		{xf.SourceBinormalT, xf.HasNrm1, "binormal t"},
		{xf.SourceBinormalB, xf.HasNrm2, "binormal b"},
	}
	for i, nr := range normals {
		w.Linef("case %du: // %s", nr.row, nr.name)
		w.Linef("  coord.xyz = ((components & %s) != 0u) ? rawnorm%d.xyz : coord.xyz;", lit(nr.has), i)
		w.Line("  break;")
		w.Line("")
	}
	for i := range MaxTexGens {
		w.Linef("case %du: // tex%d", xf.SourceTex0+xf.SourceRow(i), i)
		w.Linef("  coord = ((components & %s) != 0u) ? float4(rawtex%d.x, rawtex%d.y, 1.0, 1.0) : coord;",
			lit(xf.HasUV(i)), i, i)
		w.Line("  break;")
		w.Line("")
	}
	w.Line("default: // colors and reserved rows")
	w.Line("  break;")
	w.Line("}")
	w.Line("")
}

// writeEmboss writes the emboss-map case. Outputs are zeroed before the
// loop, so a source that is not an earlier texgen reads as zero.
func writeEmboss(w *code.Builder, n int) {
	w.Linef("case %du: // emboss map", xf.TexGenEmbossMap)
	w.Line("  {")
	w.Indent()
	w.Indent()
	w.Linef("uint light = %s;", bitfieldExtract("texMtxInfo", xf.TexMtxEmbossLight))
	w.Linef("uint source = %s;", bitfieldExtract("texMtxInfo", xf.TexMtxEmbossSource))
	w.Line("switch (source) {")
	for i := range n {
		w.Linef("case %du: output_tex.xyz = o.tex%d.xyz; break;", i, i)
	}
	w.Line("default: output_tex.xyz = float3(0.0, 0.0, 0.0); break;")
	w.Line("}")
	w.Linef("if ((components & %s) != 0u) { // normal 1 or normal 2", lit(xf.HasNrm1|xf.HasNrm2))
	w.Linef("  float3 ldir = normalize(%s[light].pos.xyz - pos.xyz);", uniformLights)
	w.Line("  output_tex.xyz += float3(dot(ldir, _norm1), dot(ldir, _norm2), 0.0);")
	w.Line("}")
	w.Unindent()
	w.Unindent()
	w.Line("  }")
	w.Line("  break;")
	w.Line("")
}

// writeRegular writes the regular case: a 2x4 or 3x4 matrix taken from the
// per-vertex index when present, otherwise from the texgen's own slot.
func writeRegular(w *code.Builder, n int) {
	proj := bitfieldExtract("texMtxInfo", xf.TexMtxProjection)
	mtx := uniformTransformMatrix
	tex := uniformTexMatrices

	w.Line("default: // regular")
	w.Line("  {")
	w.Indent()
	w.Indent()
	w.Linef("if ((components & (%s << texgen)) != 0u) {", lit(xf.HasTexMtxIdx0))
	w.Indent()
	w.Line("// This is messy, due to dynamic indexing of the input texture coordinates.")
	w.Line("int tmp = 0;")
	w.Line("switch (texgen) {")
	for i := range n {
		w.Linef("case %du: tmp = int(rawtex%d.z); break;", i, i)
	}
	w.Line("}")
	w.Line("")
	w.Linef("if (%s == %du) {", proj, xf.ProjectionSTQ)
	w.Linef("  output_tex.xyz = float3(dot(coord, %s[tmp]),", mtx)
	w.Linef("                          dot(coord, %s[tmp + 1]),", mtx)
	w.Linef("                          dot(coord, %s[tmp + 2]));", mtx)
	w.Line("} else {")
	w.Linef("  output_tex.xyz = float3(dot(coord, %s[tmp]),", mtx)
	w.Linef("                          dot(coord, %s[tmp + 1]),", mtx)
	w.Line("                          1.0);")
	w.Line("}")
	w.Unindent()
	w.Line("} else {")
	w.Indent()
	w.Linef("if (%s == %du) {", proj, xf.ProjectionSTQ)
	w.Linef("  output_tex.xyz = float3(dot(coord, %s[3u * texgen]),", tex)
	w.Linef("                          dot(coord, %s[3u * texgen + 1u]),", tex)
	w.Linef("                          dot(coord, %s[3u * texgen + 2u]));", tex)
	w.Line("} else {")
	w.Linef("  output_tex.xyz = float3(dot(coord, %s[3u * texgen]),", tex)
	w.Linef("                          dot(coord, %s[3u * texgen + 1u]),", tex)
	w.Line("                          1.0);")
	w.Line("}")
	w.Unindent()
	w.Line("}")
	w.Unindent()
	w.Unindent()
	w.Line("  }")
	w.Line("  break;")
}

// writePostTransform writes the dual texture transform stage.
func writePostTransform(w *code.Builder) {
	w.Line("if (xfmem_dualTexInfo != 0u) {")
	w.Indent()
	w.Line("uint postMtxInfo = xfmem_postMtxInfo(texgen);")
	w.Linef("uint base_index = %s;", bitfieldExtract("postMtxInfo", xf.PostMtxIndex))
	w.Linef("float4 P0 = %s[base_index & 0x3fu];", uniformPostMatrices)
	w.Linef("float4 P1 = %s[(base_index + 1u) & 0x3fu];", uniformPostMatrices)
	w.Linef("float4 P2 = %s[(base_index + 2u) & 0x3fu];", uniformPostMatrices)
	w.Line("")
	w.Linef("if (%s != 0u)", bitfieldExtract("postMtxInfo", xf.PostMtxNormalize))
	w.Line("  output_tex.xyz = normalize(output_tex.xyz);")
	w.Line("")
	w.Line("// multiply by postmatrix")
	w.Line("output_tex.xyz = float3(dot(P0.xyz, output_tex.xyz) + P0.w,")
	w.Line("                        dot(P1.xyz, output_tex.xyz) + P1.w,")
	w.Line("                        dot(P2.xyz, output_tex.xyz) + P2.w);")
	w.Unindent()
	w.Line("}")
	w.Line("")
}
