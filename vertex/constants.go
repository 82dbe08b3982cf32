// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"encoding/binary"

	"github.com/chewxy/math32"

	"github.com/gogpu/ubershader/xf"
)

// ConstantsSize is the std140 size of VSBlock in bytes.
const ConstantsSize = 3984

// pixelCenterOffset is the distance between console and host pixel centers,
// in pixels.
const pixelCenterOffset = 7.0/12.0 - 0.5

// depthScale normalizes 24-bit depth register values.
const depthScale = 16777215.0

// LightConstants is one Light in VSBlock.
type LightConstants struct {
	Color   [4]int32
	CosAtt  [4]float32
	DistAtt [4]float32
	Pos     [4]float32
	Dir     [4]float32
}

// Constants mirrors VSBlock. Field order and sizes match the std140 and
// cbuffer layouts of the generated block, so Bytes is a straight copy.
type Constants struct {
	PosNormalMatrix [6][4]float32
	Projection      [4][4]float32
	// Materials holds the ambient colors in 0-1 and the material colors in 2-3.
	Materials             [4][4]int32
	Lights                [xf.NumLights]LightConstants
	TexMatrices           [24][4]float32
	TransformMatrices     [64][4]float32
	NormalMatrices        [32][4]float32
	PostTransformMatrices [64][4]float32
	// DepthParams holds the far plane and depth range in xy and the
	// signed pixel-center offset in zw.
	DepthParams [4]float32
	// ViewParams holds the half viewport size in host pixels in xy and its
	// reciprocal in zw.
	ViewParams [4]float32
	// Pack1 holds texMtxInfo, postMtxInfo, color and alpha channel words
	// per texgen slot.
	Pack1         [MaxTexGens][4]uint32
	DualTexInfo   uint32
	NumColorChans uint32
	Components    uint32
}

// SetXF loads matrices, lights, colors and the packed texgen and channel
// words from transform unit memory.
func (c *Constants) SetXF(mem *xf.Memory, components xf.Components) {
	for i := range c.TransformMatrices {
		copy(c.TransformMatrices[i][:], mem.Matrices[i*4:i*4+4])
	}
	for i := range c.NormalMatrices {
		copy(c.NormalMatrices[i][:3], mem.NormalMatrices[i*3:i*3+3])
		c.NormalMatrices[i][3] = 0
	}
	for i := range c.PostTransformMatrices {
		copy(c.PostTransformMatrices[i][:], mem.PostMatrices[i*4:i*4+4])
	}

	posIdx := int(mem.MatrixIndexA & 0x3f)
	for row := range 3 {
		c.PosNormalMatrix[row] = c.matrixRow(posIdx + row)
		n := (posIdx & 31) + row
		c.PosNormalMatrix[3+row] = c.NormalMatrices[n%len(c.NormalMatrices)]
	}
	for i := range MaxTexGens {
		idx := texMatrixIndex(mem, i)
		for row := range 3 {
			c.TexMatrices[3*i+row] = c.matrixRow(idx + row)
		}
	}

	for i := range 2 {
		c.Materials[i] = int4(xf.UnpackRGBA(mem.Ambient[i]))
		c.Materials[2+i] = int4(xf.UnpackRGBA(mem.Material[i]))
	}
	for i := range mem.Lights {
		l := &mem.Lights[i]
		c.Lights[i] = LightConstants{
			Color:   int4(l.RGBA()),
			CosAtt:  vec4(l.CosAtt),
			DistAtt: vec4(l.DistAtt),
			Pos:     vec4(l.Pos),
			Dir:     vec4(l.Dir),
		}
	}

	c.SetProjection(mem.Projection)

	for i := range MaxTexGens {
		c.Pack1[i] = [4]uint32{uint32(mem.TexMtxInfo[i]), uint32(mem.PostMtxInfo[i]), 0, 0}
		if i < 2 {
			c.Pack1[i][2] = uint32(mem.Color[i])
			c.Pack1[i][3] = uint32(mem.Alpha[i])
		}
	}
	c.DualTexInfo = 0
	if mem.DualTexEnabled() {
		c.DualTexInfo = 1
	}
	c.NumColorChans = uint32(mem.NumColorChannels())
	c.Components = uint32(components)
}

func (c *Constants) matrixRow(row int) [4]float32 {
	return c.TransformMatrices[row%len(c.TransformMatrices)]
}

// texMatrixIndex returns the matrix row selected for texgen i by the
// matrix index registers.
func texMatrixIndex(mem *xf.Memory, i int) int {
	if i < 4 {
		return int(mem.MatrixIndexA>>(6*(i+1))) & 0x3f
	}
	return int(mem.MatrixIndexB>>(6*(i-4))) & 0x3f
}

// SetProjection builds the 4x4 projection from the raw registers.
func (c *Constants) SetProjection(p xf.Projection) {
	r := p.Raw
	if p.Type == 0 {
		c.Projection = [4][4]float32{
			{r[0], 0, r[1], 0},
			{0, r[2], r[3], 0},
			{0, 0, r[4], r[5]},
			{0, 0, -1, 0},
		}
		return
	}
	c.Projection = [4][4]float32{
		{r[0], 0, 0, r[1]},
		{0, r[2], 0, r[3]},
		{0, 0, r[4], r[5]},
		{0, 0, 0, 1},
	}
}

// SetViewport sets DepthParams and ViewParams from the viewport registers.
// scale is the ratio of host pixels to console pixels. A zero-sized
// viewport leaves the pixel terms at zero.
func (c *Constants) SetViewport(vp xf.Viewport, scale float32) {
	c.DepthParams = [4]float32{vp.FarZ / depthScale, vp.ZRange / depthScale, 0, 0}
	c.ViewParams = [4]float32{}

	width := 2 * vp.Wd * scale
	height := 2 * vp.Ht * scale
	if width == 0 || height == 0 {
		return
	}
	c.DepthParams[2] = -pixelCenterOffset * 2 / width
	c.DepthParams[3] = -pixelCenterOffset * 2 / height

	halfW := math32.Abs(width) / 2
	halfH := math32.Abs(height) / 2
	c.ViewParams = [4]float32{halfW, halfH, 1 / halfW, 1 / halfH}
}

// Bytes returns the block encoded little-endian, padded to ConstantsSize.
func (c *Constants) Bytes() []byte {
	b := make([]byte, 0, ConstantsSize)
	b, err := binary.Append(b, binary.LittleEndian, c)
	if err != nil {
		// Constants only holds fixed-size fields.
		panic(err)
	}
	return append(b, make([]byte, ConstantsSize-len(b))...)
}

func int4(v [4]uint8) [4]int32 {
	return [4]int32{int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3])}
}

func vec4(v [3]float32) [4]float32 {
	return [4]float32{v[0], v[1], v[2], 0}
}

