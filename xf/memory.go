// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xf

import (
	"errors"
	"fmt"
	"math"
)

// Memory layout.
const (
	MatrixBase  = 0x0000
	MatrixWords = 256

	NormalMatrixBase  = 0x0400
	NormalMatrixWords = 96

	PostMatrixBase  = 0x0500
	PostMatrixWords = 256

	LightBase  = 0x0600
	LightWords = 16
	NumLights  = 8

	MaxTexGens = 8
)

// Register addresses.
const (
	RegError         = 0x1000
	RegDiag          = 0x1001
	RegState0        = 0x1002
	RegState1        = 0x1003
	RegClock         = 0x1004
	RegClipDisable   = 0x1005
	RegSetGPMetric   = 0x1006
	RegVtxSpecs      = 0x1008
	RegNumColorChans = 0x1009
	RegAmbient0      = 0x100a
	RegAmbient1      = 0x100b
	RegMaterial0     = 0x100c
	RegMaterial1     = 0x100d
	RegColor0Cntrl   = 0x100e
	RegColor1Cntrl   = 0x100f
	RegAlpha0Cntrl   = 0x1010
	RegAlpha1Cntrl   = 0x1011
	RegDualTexTrans  = 0x1012
	RegMatrixIndexA  = 0x1018
	RegMatrixIndexB  = 0x1019
	RegViewport      = 0x101a
	RegProjection    = 0x1020
	RegNumTexGen     = 0x103f
	RegTexMtxInfo    = 0x1040
	RegPostMtxInfo   = 0x1050

	regEnd = RegPostMtxInfo + MaxTexGens
)

// ErrUnmappedAddress is returned for writes outside XF memory.
var ErrUnmappedAddress = errors.New("xf: unmapped address")

// Light is one hardware light as laid out in XF memory.
type Light struct {
	// Color is packed 0xRRGGBBAA.
	Color   uint32
	CosAtt  [3]float32
	DistAtt [3]float32
	Pos     [3]float32
	Dir     [3]float32
}

// RGBA returns the light color channels.
func (l *Light) RGBA() [4]uint8 {
	return UnpackRGBA(l.Color)
}

// Viewport holds the viewport registers.
type Viewport struct {
	Wd, Ht, ZRange float32
	XOrig, YOrig   float32
	FarZ           float32
}

// Projection holds the projection registers.
type Projection struct {
	Raw  [6]float32
	Type uint32 // 0 perspective, 1 orthographic
}

// Memory is a snapshot of transform unit memory.
type Memory struct {
	Matrices       [MatrixWords]float32
	NormalMatrices [NormalMatrixWords]float32
	PostMatrices   [PostMatrixWords]float32
	Lights         [NumLights]Light

	Error         uint32
	Misc          [8]uint32 // diag, state, clock and metric registers, 0x1001-0x1008
	NumColorChans uint32
	Ambient       [2]uint32 // 0xRRGGBBAA
	Material      [2]uint32 // 0xRRGGBBAA
	Color         [2]LitChannel
	Alpha         [2]LitChannel
	DualTexTrans  uint32
	MatrixIndexA  uint32
	MatrixIndexB  uint32
	Viewport      Viewport
	Projection    Projection
	NumTexGen     uint32
	TexMtxInfo    [MaxTexGens]TexMtxInfo
	PostMtxInfo   [MaxTexGens]PostMtxInfo
}

// NumTexGens returns the raw texgen count. Values above MaxTexGens can be
// loaded into the register but are not valid configurations.
func (m *Memory) NumTexGens() int {
	return int(NumTexGenCount.Extract(m.NumTexGen))
}

// NumColorChannels returns the number of active color channels.
func (m *Memory) NumColorChannels() int {
	return int(NumColorChansCount.Extract(m.NumColorChans))
}

// DualTexEnabled reports whether the post-transform stage is enabled.
func (m *Memory) DualTexEnabled() bool {
	return DualTexEnabled.Extract(m.DualTexTrans) != 0
}

// WriteBlock writes consecutive words starting at addr.
func (m *Memory) WriteBlock(addr uint32, words []uint32) error {
	for i, w := range words {
		if err := m.Write(addr+uint32(i), w); err != nil {
			return err
		}
	}
	return nil
}

// Write stores one 32-bit word at an XF address.
//
// Matrix and light data words are float32 bit patterns. Writes to reserved
// addresses inside the register block are accepted and dropped.
func (m *Memory) Write(addr, value uint32) error {
	f := math.Float32frombits(value)
	switch {
	case addr < MatrixBase+MatrixWords:
		m.Matrices[addr-MatrixBase] = f
	case addr >= NormalMatrixBase && addr < NormalMatrixBase+NormalMatrixWords:
		m.NormalMatrices[addr-NormalMatrixBase] = f
	case addr >= PostMatrixBase && addr < PostMatrixBase+PostMatrixWords:
		m.PostMatrices[addr-PostMatrixBase] = f
	case addr >= LightBase && addr < LightBase+NumLights*LightWords:
		m.writeLight(addr-LightBase, value)
	case addr >= RegError && addr < regEnd:
		m.writeRegister(addr, value)
	default:
		return fmt.Errorf("%w: %#04x", ErrUnmappedAddress, addr)
	}
	return nil
}

func (m *Memory) writeLight(offset, value uint32) {
	l := &m.Lights[offset/LightWords]
	word := offset % LightWords
	f := math.Float32frombits(value)
	switch {
	case word < 3:
		// unused
	case word == 3:
		l.Color = value
	case word < 7:
		l.CosAtt[word-4] = f
	case word < 10:
		l.DistAtt[word-7] = f
	case word < 13:
		l.Pos[word-10] = f
	default:
		l.Dir[word-13] = f
	}
}

func (m *Memory) writeRegister(addr, value uint32) {
	f := math.Float32frombits(value)
	switch {
	case addr == RegError:
		m.Error = value
	case addr <= RegVtxSpecs:
		m.Misc[addr-RegDiag] = value
	case addr == RegNumColorChans:
		m.NumColorChans = value
	case addr == RegAmbient0, addr == RegAmbient1:
		m.Ambient[addr-RegAmbient0] = value
	case addr == RegMaterial0, addr == RegMaterial1:
		m.Material[addr-RegMaterial0] = value
	case addr == RegColor0Cntrl, addr == RegColor1Cntrl:
		m.Color[addr-RegColor0Cntrl] = LitChannel(value)
	case addr == RegAlpha0Cntrl, addr == RegAlpha1Cntrl:
		m.Alpha[addr-RegAlpha0Cntrl] = LitChannel(value)
	case addr == RegDualTexTrans:
		m.DualTexTrans = value
	case addr == RegMatrixIndexA:
		m.MatrixIndexA = value
	case addr == RegMatrixIndexB:
		m.MatrixIndexB = value
	case addr >= RegViewport && addr < RegViewport+6:
		vp := [...]*float32{
			&m.Viewport.Wd, &m.Viewport.Ht, &m.Viewport.ZRange,
			&m.Viewport.XOrig, &m.Viewport.YOrig, &m.Viewport.FarZ,
		}
		*vp[addr-RegViewport] = f
	case addr >= RegProjection && addr < RegProjection+6:
		m.Projection.Raw[addr-RegProjection] = f
	case addr == RegProjection+6:
		m.Projection.Type = value
	case addr == RegNumTexGen:
		m.NumTexGen = value
	case addr >= RegTexMtxInfo && addr < RegTexMtxInfo+MaxTexGens:
		m.TexMtxInfo[addr-RegTexMtxInfo] = TexMtxInfo(value)
	case addr >= RegPostMtxInfo && addr < RegPostMtxInfo+MaxTexGens:
		m.PostMtxInfo[addr-RegPostMtxInfo] = PostMtxInfo(value)
	}
}

// UnpackRGBA splits a 0xRRGGBBAA color register.
func UnpackRGBA(c uint32) [4]uint8 {
	return [4]uint8{uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)}
}
