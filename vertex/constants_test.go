// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ubershader/xf"
)

func TestConstantsLayout(t *testing.T) {
	var c Constants
	c.Components = 0xdeadbeef
	c.NumColorChans = 2
	c.DualTexInfo = 1
	c.DepthParams = [4]float32{1.5, 0, 0, 0}

	b := c.Bytes()
	require.Len(t, b, ConstantsSize)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(b[3968:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(b[3972:]))
	assert.Equal(t, uint32(0xdeadbeef), binary.LittleEndian.Uint32(b[3976:]))
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(b[3808:])))
}

func TestConstantsSetXF(t *testing.T) {
	var mem xf.Memory
	for i := range mem.Matrices {
		mem.Matrices[i] = float32(i)
	}
	for i := range mem.NormalMatrices {
		mem.NormalMatrices[i] = float32(i)
	}
	mem.MatrixIndexA = 3 | 6<<6 // position row 3, texgen 0 row 6
	mem.MatrixIndexB = 9        // texgen 4 row 9
	mem.Ambient[1] = 0x10203040
	mem.Material[0] = 0xff000080
	mem.Lights[2].Color = 0x01020304
	mem.Lights[2].Pos = [3]float32{1, 2, 3}
	mem.TexMtxInfo[5] = 0x1234
	mem.PostMtxInfo[5] = 0x105
	mem.Color[1] = 0x42
	mem.Alpha[0] = 0x7
	mem.NumColorChans = 2
	mem.DualTexTrans = 1

	var c Constants
	c.SetXF(&mem, xf.HasNrm0|xf.HasUV(1))

	assert.Equal(t, [4]float32{4, 5, 6, 7}, c.TransformMatrices[1])
	assert.Equal(t, [4]float32{3, 4, 5, 0}, c.NormalMatrices[1])
	assert.Equal(t, c.TransformMatrices[3], c.PosNormalMatrix[0])
	assert.Equal(t, c.NormalMatrices[5], c.PosNormalMatrix[5])
	assert.Equal(t, c.TransformMatrices[6], c.TexMatrices[0])
	assert.Equal(t, c.TransformMatrices[8], c.TexMatrices[2])
	assert.Equal(t, c.TransformMatrices[9], c.TexMatrices[12])

	assert.Equal(t, [4]int32{0x10, 0x20, 0x30, 0x40}, c.Materials[1])
	assert.Equal(t, [4]int32{0xff, 0, 0, 0x80}, c.Materials[2])
	assert.Equal(t, [4]int32{1, 2, 3, 4}, c.Lights[2].Color)
	assert.Equal(t, [4]float32{1, 2, 3, 0}, c.Lights[2].Pos)

	assert.Equal(t, [4]uint32{0x1234, 0x105, 0, 0}, c.Pack1[5])
	assert.Equal(t, [4]uint32{0, 0, 0x42, 0}, c.Pack1[1])
	assert.Equal(t, uint32(7), c.Pack1[0][3])
	assert.Equal(t, uint32(1), c.DualTexInfo)
	assert.Equal(t, uint32(2), c.NumColorChans)
	assert.Equal(t, uint32(xf.HasNrm0|xf.HasUV(1)), c.Components)
}

func TestConstantsProjection(t *testing.T) {
	var c Constants
	c.SetProjection(xf.Projection{Raw: [6]float32{1, 2, 3, 4, 5, 6}})
	assert.Equal(t, [4]float32{0, 0, -1, 0}, c.Projection[3])
	assert.Equal(t, [4]float32{1, 0, 2, 0}, c.Projection[0])

	c.SetProjection(xf.Projection{Raw: [6]float32{1, 2, 3, 4, 5, 6}, Type: 1})
	assert.Equal(t, [4]float32{0, 0, 0, 1}, c.Projection[3])
	assert.Equal(t, [4]float32{1, 0, 0, 2}, c.Projection[0])
	assert.Equal(t, [4]float32{0, 0, 5, 6}, c.Projection[2])
}

func TestConstantsViewport(t *testing.T) {
	var c Constants
	c.SetViewport(xf.Viewport{Wd: 320, Ht: -240, ZRange: 16777215, FarZ: 16777215}, 1)
	assert.InDelta(t, 1.0, c.DepthParams[0], 1e-6)
	assert.InDelta(t, 1.0, c.DepthParams[1], 1e-6)
	assert.Negative(t, c.DepthParams[2])
	assert.Positive(t, c.DepthParams[3])
	assert.Equal(t, [4]float32{320, 240, 1.0 / 320, 1.0 / 240}, c.ViewParams)

	c.SetViewport(xf.Viewport{FarZ: 16777215}, 1)
	assert.Equal(t, [4]float32{}, c.ViewParams)
	assert.Zero(t, c.DepthParams[2])
}
