// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package softxf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ubershader/vertex"
	"github.com/gogpu/ubershader/xf"
)

// newConstants returns constants with identity position, normal and
// projection matrices at row 0 and a 640x480 viewport.
func newConstants() *vertex.Constants {
	c := &vertex.Constants{}
	for r := range 3 {
		c.TransformMatrices[r][r] = 1
		c.NormalMatrices[r][r] = 1
	}
	for r := range 4 {
		c.Projection[r][r] = 1
	}
	c.SetViewport(xf.Viewport{Wd: 320, Ht: -240, ZRange: 16777215, FarZ: 16777215}, 1)
	return c
}

func setTexGen(c *vertex.Constants, i int, g xf.TexGen) {
	c.Pack1[i][0] = uint32(xf.TexMtxInfoOf(g))
	c.Pack1[i][1] = uint32(xf.PostMtxInfoOf(g))
}

// uvRegular reads tex0 through texture matrix slot i set to identity.
func uvRegular(c *vertex.Constants, i int, proj xf.TexProjection) {
	setTexGen(c, i, xf.TexGen{SourceRow: xf.SourceTex0, Type: xf.TexGenRegular, Projection: proj})
	c.TexMatrices[3*i] = [4]float32{1, 0, 0, 0}
	c.TexMatrices[3*i+1] = [4]float32{0, 1, 0, 0}
	c.TexMatrices[3*i+2] = [4]float32{}
}

func eval(t *testing.T, p *Pipeline, v Vertex) Output {
	t.Helper()
	out, err := p.Eval(v, [2]Vec4{})
	require.NoError(t, err)
	return out
}

func TestZeroQHalvesThenClamps(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasUV0)
	uvRegular(c, 0, xf.ProjectionSTQ)
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 1}}

	out := eval(t, p, Vertex{Tex: [8]Vec3{{4, -6, 0}}})
	assert.Equal(t, Vec3{1, -1, 0}, out.Tex[0])

	out = eval(t, p, Vertex{Tex: [8]Vec3{{1, -1, 0}}})
	assert.Equal(t, Vec3{0.5, -0.5, 0}, out.Tex[0])

	// A non-zero q is left alone.
	c.TexMatrices[2] = [4]float32{0, 0, 0, 2}
	out = eval(t, p, Vertex{Tex: [8]Vec3{{4, -6, 0}}})
	assert.Equal(t, Vec3{4, -6, 2}, out.Tex[0])
}

func TestSTForcesUnitQ(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasUV0)
	uvRegular(c, 0, xf.ProjectionST)
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 1}}

	out := eval(t, p, Vertex{Tex: [8]Vec3{{4, -6, 0}}})
	assert.Equal(t, Vec3{4, -6, 1}, out.Tex[0])
}

func TestMissingSourceKeepsDefault(t *testing.T) {
	c := newConstants()
	uvRegular(c, 0, xf.ProjectionSTQ)
	c.TexMatrices[2] = [4]float32{0, 0, 1, 0}
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 1}}

	// No UV0 component: coord stays (0, 0, 1, 1).
	out := eval(t, p, Vertex{Tex: [8]Vec3{{4, -6, 0}}})
	assert.Equal(t, Vec3{0, 0, 1}, out.Tex[0])
}

func TestPerVertexTexMatrix(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasUV0 | xf.HasTexMtxIdx(0))
	uvRegular(c, 0, xf.ProjectionST)
	c.TransformMatrices[10] = [4]float32{2, 0, 0, 0}
	c.TransformMatrices[11] = [4]float32{0, 3, 0, 0}
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 1}}

	out := eval(t, p, Vertex{Tex: [8]Vec3{{1, 1, 10}}})
	assert.Equal(t, Vec3{2, 3, 1}, out.Tex[0])

	_, err := p.Eval(Vertex{Tex: [8]Vec3{{1, 1, 62}}}, [2]Vec4{})
	assert.ErrorIs(t, err, ErrMatrixIndex)
}

func TestEmbossSources(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasUV0)
	uvRegular(c, 0, xf.ProjectionST)
	setTexGen(c, 1, xf.TexGen{Type: xf.TexGenEmbossMap, EmbossSource: 0})
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 2}}

	out := eval(t, p, Vertex{Tex: [8]Vec3{{0.25, 0.5, 0}}})
	assert.Equal(t, Vec3{0.25, 0.5, 1}, out.Tex[1])

	// Forward and self references read zero.
	setTexGen(c, 0, xf.TexGen{Type: xf.TexGenEmbossMap, EmbossSource: 1})
	setTexGen(c, 1, xf.TexGen{Type: xf.TexGenEmbossMap, EmbossSource: 1})
	out = eval(t, p, Vertex{Tex: [8]Vec3{{0.25, 0.5, 0}}})
	assert.Equal(t, Vec3{}, out.Tex[0])
	assert.Equal(t, Vec3{}, out.Tex[1])
}

func TestEmbossUsesUnnormalizedBinormals(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasNrm1)
	c.Lights[3].Pos = [4]float32{10, 0, 0, 0}
	setTexGen(c, 0, xf.TexGen{Type: xf.TexGenEmbossMap, EmbossLight: 3})
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 1}}

	out := eval(t, p, Vertex{Normals: [3]Vec3{{}, {2, 0, 0}}})
	assert.Equal(t, Vec3{2, 0, 0}, out.Tex[0])
	assert.Equal(t, Vec3{2, 0, 0}, out.Normals[1])
}

func TestColorTexGens(t *testing.T) {
	c := newConstants()
	setTexGen(c, 0, xf.TexGen{Type: xf.TexGenColorStrgbc0})
	setTexGen(c, 1, xf.TexGen{Type: xf.TexGenColorStrgbc1})
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 2}}

	out, err := p.Eval(Vertex{}, [2]Vec4{{0.25, 0.5, 0, 1}, {0.75, 0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, Vec3{0.25, 0.5, 1}, out.Tex[0])
	assert.Equal(t, Vec3{0.75, 0, 1}, out.Tex[1])
}

func TestPostTransformWraps(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasUV0)
	c.DualTexInfo = 1
	uvRegular(c, 0, xf.ProjectionST)
	setTexGen(c, 0, xf.TexGen{
		SourceRow:      xf.SourceTex0,
		Type:           xf.TexGenRegular,
		PostMatrixBase: 63,
	})
	c.PostTransformMatrices[63] = [4]float32{1, 0, 0, 0.5}
	c.PostTransformMatrices[0] = [4]float32{0, 1, 0, 0}
	c.PostTransformMatrices[1] = [4]float32{0, 0, 1, 0}
	p := &Pipeline{Constants: c, Uid: vertex.Uid{NumTexGens: 1}}

	out := eval(t, p, Vertex{Tex: [8]Vec3{{0.25, 0.5, 0}}})
	assert.Equal(t, Vec3{0.75, 0.5, 1}, out.Tex[0])

	// Normalize before the post matrix.
	c.Pack1[0][1] |= 1 << 8
	out = eval(t, p, Vertex{Tex: [8]Vec3{{3, 0, 0}}})
	assert.InDelta(t, 0.5+3/float32(3.1622777), out.Tex[0][0], 1e-5)
	assert.InDelta(t, 1/float32(3.1622777), out.Tex[0][2], 1e-5)
}

func TestNormalBankOffset(t *testing.T) {
	c := newConstants()
	c.Components = uint32(xf.HasNrm0 | xf.HasNrm1)
	for r := range 3 {
		c.TransformMatrices[33+r][r] = 1
		c.NormalMatrices[1+r] = [4]float32{}
		c.NormalMatrices[1+r][r] = 2
	}
	p := &Pipeline{Constants: c}

	out := eval(t, p, Vertex{PosMtx: 33, Normals: [3]Vec3{{0, 0, 3}, {1, 0, 0}}})
	assert.Equal(t, Vec3{2, 0, 0}, out.Normals[1])
	assert.Equal(t, Vec3{0, 0, 1}, out.Normals[0])

	_, err := p.Eval(Vertex{PosMtx: 62}, [2]Vec4{})
	assert.ErrorIs(t, err, ErrMatrixIndex)
	_, err = p.Eval(Vertex{PosMtx: 31}, [2]Vec4{})
	assert.ErrorIs(t, err, ErrMatrixIndex)
}

func TestDepthRemap(t *testing.T) {
	c := newConstants()
	c.Projection[3] = [4]float32{0, 0, 0, 2}
	c.DepthParams[0], c.DepthParams[1] = 1, 1

	p := &Pipeline{Constants: c, ClipControl: true}
	out := eval(t, p, Vertex{Pos: Vec3{0, 0, -0.5}})
	assert.InDelta(t, 2.5, out.Pos[2], 1e-6)
	assert.InDelta(t, 2-0.5*0.9999999, out.ClipDist[0], 1e-6)
	assert.InDelta(t, 0.5*0.9999999, out.ClipDist[1], 1e-6)

	p.ClipControl = false
	out = eval(t, p, Vertex{Pos: Vec3{0, 0, -0.5}})
	assert.InDelta(t, 3.0, out.Pos[2], 1e-6)
}

func TestViewportSignAndOffset(t *testing.T) {
	c := newConstants()
	c.Projection[3] = [4]float32{0, 0, 0, 2}
	c.DepthParams[2], c.DepthParams[3] = 0.01, -0.02
	p := &Pipeline{Constants: c}

	out := eval(t, p, Vertex{Pos: Vec3{1, 1, 0}})
	assert.InDelta(t, -1+2*0.01, out.Pos[0], 1e-6)
	assert.InDelta(t, -1-2*0.02, out.Pos[1], 1e-6)
}

func TestPixelSnapOnlyAtUnitW(t *testing.T) {
	c := newConstants()
	p := &Pipeline{Constants: c}

	out := eval(t, p, Vertex{Pos: Vec3{0.1234, 0.5, 0}})
	assert.InDelta(t, 39.0/320, out.Pos[0], 1e-6)
	assert.InDelta(t, 0.5, out.Pos[1], 1e-6)

	c.Projection[3] = [4]float32{0, 0, 0, 2}
	out = eval(t, p, Vertex{Pos: Vec3{0.1234, 0.5, 0}})
	assert.InDelta(t, 0.1234+2*c.DepthParams[2], out.Pos[0], 1e-6)
}

func TestMatchesLoadedMemory(t *testing.T) {
	var mem xf.Memory
	for r := range 3 {
		mem.Matrices[r*4+r] = 1
		mem.NormalMatrices[r*3+r] = 1
	}
	mem.Projection = xf.Projection{Raw: [6]float32{1, 0, 1, 0, 1, 0}, Type: 1}
	mem.Viewport = xf.Viewport{Wd: 320, Ht: -240, ZRange: 16777215, FarZ: 16777215}
	require.NoError(t, mem.Write(xf.RegNumTexGen, 1))
	require.NoError(t, mem.SetTexGen(0, xf.TexGen{SourceRow: xf.SourceGeom, InputForm: xf.InputABC1, Projection: xf.ProjectionSTQ}))
	mem.MatrixIndexA = 0

	var c vertex.Constants
	c.SetXF(&mem, 0)
	c.SetViewport(mem.Viewport, 1)
	p := &Pipeline{Constants: &c, Uid: vertex.Uid{NumTexGens: 1}, ClipControl: true}

	// Texgen 0 uses matrix rows 0-2, the identity, on the raw position.
	out := eval(t, p, Vertex{Pos: Vec3{0.5, 0.25, 0.75}})
	assert.Equal(t, Vec3{0.5, 0.25, 0.75}, out.Tex[0])
	assert.Equal(t, Vec3{0.5, 0.25, 0.75}, out.View)
}
