// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"fmt"

	"github.com/gogpu/ubershader/code"
	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/xf"
)

// Generate returns the vertex uber-shader source for uid on the given host.
//
// The result is deterministic: equal inputs give byte-identical text.
func Generate(uid Uid, hc host.Config) (string, error) {
	if err := uid.Validate(); err != nil {
		return "", &Error{Kind: ErrInvalidUid, Message: uid.String(), Err: err}
	}
	d, err := newDialect(hc)
	if err != nil {
		return "", err
	}

	var w code.Builder
	w.Grow(SizeHint(uid))

	d.writePrelude(&w)
	writeHeader(&w, d)
	writeOutputStruct(&w, uid, hc, d.semantics())
	writeHelpers(&w, hc)
	writeLightingFunction(&w)

	d.writeEntry(&w, uid)
	w.Indent()
	w.Line("VS_OUTPUT o;")
	w.Line("")
	writeTransform(&w, d)
	writeVertexLighting(&w, d)
	writeTexGens(&w, d, uid)
	writeClipOutputs(&w, uid)
	writeDepth(&w, hc)
	d.writeExit(&w, uid)

	return w.String(), nil
}

// writeTransform writes position and normal transformation.
// Only the first normal is normalized.
func writeTransform(w *code.Builder, d dialect) {
	mtx := uniformTransformMatrix
	nrm := uniformNormalMatrices
	proj := uniformProjection

	w.Line("// Position matrix")
	w.Line("float4 P0;")
	w.Line("float4 P1;")
	w.Line("float4 P2;")
	w.Line("")
	w.Line("// Normal matrix")
	w.Line("float3 N0;")
	w.Line("float3 N1;")
	w.Line("float3 N2;")
	w.Line("")
	w.Line("// Vertex format has a per-vertex matrix")
	w.Linef("int posidx = %s;", d.posIndex())
	w.Linef("P0 = %s[posidx];", mtx)
	w.Linef("P1 = %s[posidx+1];", mtx)
	w.Linef("P2 = %s[posidx+2];", mtx)
	w.Line("")
	w.Line("int normidx = posidx >= 32 ? (posidx - 32) : posidx;")
	w.Linef("N0 = %s[normidx].xyz;", nrm)
	w.Linef("N1 = %s[normidx+1].xyz;", nrm)
	w.Linef("N2 = %s[normidx+2].xyz;", nrm)
	w.Line("")
	w.Line("float4 pos = float4(dot(P0, rawpos), dot(P1, rawpos), dot(P2, rawpos), 1.0);")
	w.Linef("o.pos = float4(dot(%s[0], pos), dot(%s[1], pos), dot(%s[2], pos), dot(%s[3], pos));",
		proj, proj, proj, proj)
	w.Line("")

	w.Line("// Only the first normal gets normalized")
	normals := [...]xf.Components{xf.HasNrm0, xf.HasNrm1, xf.HasNrm2}
	for i, has := range normals {
		w.Linef("float3 _norm%d = float3(0.0, 0.0, 0.0);", i)
		w.Linef("if ((components & %s) != 0u) // normal %d", lit(has), i)
		expr := fmt.Sprintf("float3(dot(N0, rawnorm%d), dot(N1, rawnorm%d), dot(N2, rawnorm%d))", i, i, i)
		if i == 0 {
			expr = "normalize(" + expr + ")"
		}
		w.Linef("  _norm%d = %s;", i, expr)
		w.Line("")
	}
}

// writeClipOutputs writes clip position, per-pixel normal and unlit colors.
// From seven texgens on they are packed into texcoord w components.
func writeClipOutputs(w *code.Builder, uid Uid) {
	n := int(uid.NumTexGens)
	if n < packedTexGens {
		w.Line("o.clipPos = float4(pos.x, pos.y, o.pos.z, o.pos.w);")
	} else {
		w.Line("o.tex0.w = pos.x;")
		w.Line("o.tex1.w = pos.y;")
		w.Line("o.tex2.w = o.pos.z;")
		w.Line("o.tex3.w = o.pos.w;")
	}

	if uid.PerPixelLighting {
		if n < packedTexGens {
			w.Line("o.Normal = float4(_norm0.x, _norm0.y, _norm0.z, pos.z);")
		} else {
			w.Line("o.tex4.w = _norm0.x;")
			w.Line("o.tex5.w = _norm0.y;")
			w.Line("o.tex6.w = _norm0.z;")
			if n < MaxTexGens {
				w.Line("o.tex7 = pos.xyzz;")
			} else {
				w.Line("o.tex7.w = pos.z;")
			}
		}

		w.Linef("if ((components & %s) != 0u) // color 0", lit(xf.HasCol0))
		w.Line("  o.colors_0 = rawcolor0;")
		w.Line("")
		w.Linef("if ((components & %s) != 0u) // color 1", lit(xf.HasCol1))
		w.Line("  o.colors_1 = rawcolor1;")
	}
	w.Line("")
}

// writeDepth writes depth clipping, the depth range remap, the viewport
// sign flip and pixel-center snapping.
func writeDepth(w *code.Builder, hc host.Config) {
	depth := uniformDepthParams
	if hc.DepthClamp {
		w.Line("// Clip depth in the shader through clip distances. The epsilon keeps")
		w.Line("// vertices exactly on a plane from being clipped.")
		w.Line("float clipDepth = o.pos.z * 0.9999999;")
		w.Line("o.clipDist.x = clipDepth + o.pos.w;  // Near: z < -w")
		w.Line("o.clipDist.y = -clipDepth;           // Far: z > 0")
		w.Line("")
	}

	w.Line("// Remap the console -1..0 depth range to 0..1 with a depth inversion.")
	w.Linef("o.pos.z = o.pos.w * %s.x - o.pos.z * %s.y;", depth, depth)
	w.Line("")

	if !hc.ClipControl {
		w.Line("// If the host does not support a 0..1 clip space, remap to -1..1.")
		w.Line("o.pos.z = o.pos.z * 2.0 - o.pos.w;")
		w.Line("")
	}

	w.Line("// The console's viewport dimensions can be negative, flip the output if so.")
	w.Linef("o.pos.xy *= sign(%s.zw * float2(-1.0, 1.0));", depth)
	w.Line("")
	w.Line("// Console pixel centers are at integer coordinates, offset by half a host pixel.")
	w.Linef("o.pos.xy = o.pos.xy + o.pos.w * %s.zw;", depth)
	w.Line("")
	w.Line("// Snap 2D draws to the host pixel grid to avoid seams between quads.")
	w.Line("if (o.pos.w == 1.0)")
	w.Line("{")
	w.Linef("  o.pos.xy = round(o.pos.xy * %s.xy) * %s.zw;", uniformViewParams, uniformViewParams)
	w.Line("}")
	w.Line("")
}
