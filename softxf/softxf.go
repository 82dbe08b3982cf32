// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package softxf evaluates the vertex uber-shader's transform and texture
// coordinate generation on the CPU.
//
// It reads the same [vertex.Constants] the generated program reads and
// follows the same data-driven decisions, so its results are the numbers a
// host GPU computes for the emitted formulas. Lighting is not evaluated;
// lit colors are passed in for the color-channel texgens.
package softxf

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/ubershader/vertex"
	"github.com/gogpu/ubershader/xf"
)

// ErrMatrixIndex is returned when a matrix index selects rows past the end
// of its bank.
var ErrMatrixIndex = errors.New("softxf: matrix index out of range")

// Vec3 is a three-component vector.
type Vec3 = [3]float32

// Vec4 is a four-component vector.
type Vec4 = [4]float32

// Vertex is one input vertex.
type Vertex struct {
	Pos Vec3
	// PosMtx is the first row of the position matrix.
	PosMtx  int
	Normals [3]Vec3
	// Tex holds raw texture coordinates. When the per-vertex texture
	// matrix index of a texgen is present, z holds its first matrix row.
	Tex [xf.MaxTexGens]Vec3
}

// Output is the transformed vertex.
type Output struct {
	// Pos is the host clip-space position after depth and viewport fixes.
	Pos Vec4
	// View is the position after the position matrix.
	View Vec3
	// Normals are the transformed normals; only the first is normalized.
	Normals  [3]Vec3
	Tex      [xf.MaxTexGens]Vec3
	ClipDist [2]float32
}

// Pipeline evaluates vertices for one uid.
type Pipeline struct {
	Constants *vertex.Constants
	Uid       vertex.Uid
	// ClipControl selects the native 0..1 depth range.
	ClipControl bool
}

// Eval transforms v. colors are the lit channel colors.
func (p *Pipeline) Eval(v Vertex, colors [2]Vec4) (Output, error) {
	c := p.Constants
	comp := xf.Components(c.Components)
	var out Output

	posidx := v.PosMtx
	if posidx < 0 || posidx+2 >= len(c.TransformMatrices) {
		return out, fmt.Errorf("%w: position row %d", ErrMatrixIndex, posidx)
	}
	normidx := posidx
	if normidx >= 32 {
		normidx -= 32
	}
	if normidx+2 >= len(c.NormalMatrices) {
		return out, fmt.Errorf("%w: normal row %d", ErrMatrixIndex, normidx)
	}

	raw := Vec4{v.Pos[0], v.Pos[1], v.Pos[2], 1}
	P := c.TransformMatrices[posidx : posidx+3]
	pos := Vec4{dot4(P[0], raw), dot4(P[1], raw), dot4(P[2], raw), 1}
	out.View = Vec3{pos[0], pos[1], pos[2]}

	var clip Vec4
	for i := range clip {
		clip[i] = dot4(c.Projection[i], pos)
	}

	N := c.NormalMatrices[normidx : normidx+3]
	for i, has := range [...]xf.Components{xf.HasNrm0, xf.HasNrm1, xf.HasNrm2} {
		if !comp.Has(has) {
			continue
		}
		n := v.Normals[i]
		t := Vec3{dot3(xyz(N[0]), n), dot3(xyz(N[1]), n), dot3(xyz(N[2]), n)}
		if i == 0 {
			t = normalize(t)
		}
		out.Normals[i] = t
	}

	for g := range int(p.Uid.NumTexGens) {
		t, err := p.texGen(g, v, raw, pos, &out, colors)
		if err != nil {
			return out, err
		}
		out.Tex[g] = t
	}

	out.Pos, out.ClipDist = p.depth(clip)
	return out, nil
}

func (p *Pipeline) texGen(g int, v Vertex, raw, pos Vec4, out *Output, colors [2]Vec4) (Vec3, error) {
	c := p.Constants
	comp := xf.Components(c.Components)
	info := xf.TexMtxInfo(c.Pack1[g][0])

	coord := Vec4{0, 0, 1, 1}
	switch row := info.SourceRow(); row {
	case xf.SourceGeom:
		coord[0], coord[1], coord[2] = raw[0], raw[1], raw[2]
	case xf.SourceNormal, xf.SourceBinormalT, xf.SourceBinormalB:
		i := normalIndex(row)
		if comp.Has(xf.HasNrm0 << uint(i)) {
			n := v.Normals[i]
			coord[0], coord[1], coord[2] = n[0], n[1], n[2]
		}
	default:
		if row.IsTex() && comp.Has(xf.HasUV(row.TexIndex())) {
			tc := v.Tex[row.TexIndex()]
			coord = Vec4{tc[0], tc[1], 1, 1}
		}
	}
	if info.InputForm() == xf.InputAB11 {
		coord[2] = 1
	}

	var t Vec3
	switch info.TexGenType() {
	case xf.TexGenEmbossMap:
		if src := int(info.EmbossSource()); src < g {
			t = out.Tex[src]
		}
		if comp.Any(xf.HasNrm1 | xf.HasNrm2) {
			lp := c.Lights[info.EmbossLight()].Pos
			ldir := normalize(Vec3{lp[0] - pos[0], lp[1] - pos[1], lp[2] - pos[2]})
			t[0] += dot3(ldir, out.Normals[1])
			t[1] += dot3(ldir, out.Normals[2])
		}
	case xf.TexGenColorStrgbc0:
		t = Vec3{colors[0][0], colors[0][1], 1}
	case xf.TexGenColorStrgbc1:
		t = Vec3{colors[1][0], colors[1][1], 1}
	default:
		var rows [][4]float32
		if comp.Has(xf.HasTexMtxIdx(g)) {
			tmp := int(v.Tex[g][2])
			if tmp < 0 || tmp+2 >= len(c.TransformMatrices) {
				return t, fmt.Errorf("%w: texgen %d row %d", ErrMatrixIndex, g, tmp)
			}
			rows = c.TransformMatrices[tmp : tmp+3]
		} else {
			rows = c.TexMatrices[3*g : 3*g+3]
		}
		t = Vec3{dot4(coord, rows[0]), dot4(coord, rows[1]), 1}
		if info.Projection() == xf.ProjectionSTQ {
			t[2] = dot4(coord, rows[2])
		}
	}

	if c.DualTexInfo != 0 {
		post := xf.PostMtxInfo(c.Pack1[g][1])
		base := int(post.Index())
		var P [3]Vec4
		for i := range P {
			P[i] = c.PostTransformMatrices[(base+i)&0x3f]
		}
		if post.Normalize() {
			t = normalize(t)
		}
		t = Vec3{
			dot3(xyz(P[0]), t) + P[0][3],
			dot3(xyz(P[1]), t) + P[1][3],
			dot3(xyz(P[2]), t) + P[2][3],
		}
	}

	if info.TexGenType() == xf.TexGenRegular && t[2] == 0 {
		t[0] = clamp(t[0]/2, -1, 1)
		t[1] = clamp(t[1]/2, -1, 1)
	}
	return t, nil
}

// depth applies depth clipping, the depth remap and the viewport fixes.
func (p *Pipeline) depth(clip Vec4) (Vec4, [2]float32) {
	c := p.Constants
	d := c.DepthParams

	clipDepth := clip[2] * 0.9999999
	dist := [2]float32{clipDepth + clip[3], -clipDepth}

	clip[2] = clip[3]*d[0] - clip[2]*d[1]
	if !p.ClipControl {
		clip[2] = clip[2]*2 - clip[3]
	}

	clip[0] *= sign(-d[2])
	clip[1] *= sign(d[3])
	clip[0] += clip[3] * d[2]
	clip[1] += clip[3] * d[3]

	if clip[3] == 1 {
		vp := c.ViewParams
		clip[0] = math32.Round(clip[0]*vp[0]) * vp[2]
		clip[1] = math32.Round(clip[1]*vp[1]) * vp[3]
	}
	return clip, dist
}

// normalIndex maps the normal and binormal rows to vertex normals 0-2.
func normalIndex(row xf.SourceRow) int {
	if row == xf.SourceNormal {
		return 0
	}
	return int(row-xf.SourceBinormalT) + 1
}

func dot3(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func dot4(a, b Vec4) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func xyz(v Vec4) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

func normalize(v Vec3) Vec3 {
	l := math32.Sqrt(dot3(v, v))
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}

func sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
