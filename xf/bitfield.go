// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xf

// Field describes a bitfield inside a 32-bit register word.
type Field struct {
	Start uint8
	Bits  uint8
}

// Mask returns the field mask, not shifted.
func (f Field) Mask() uint32 {
	return uint32(1)<<f.Bits - 1
}

// Extract returns the field value from a packed word.
func (f Field) Extract(word uint32) uint32 {
	return (word >> f.Start) & f.Mask()
}

// Insert returns word with the field replaced by value.
// Bits of value that do not fit the field are dropped.
func (f Field) Insert(word, value uint32) uint32 {
	m := f.Mask() << f.Start
	return (word &^ m) | ((value << f.Start) & m)
}

// TexMtxInfo fields.
var (
	TexMtxProjection   = Field{Start: 1, Bits: 1}
	TexMtxInputForm    = Field{Start: 2, Bits: 1}
	TexMtxTexGenType   = Field{Start: 4, Bits: 3}
	TexMtxSourceRow    = Field{Start: 7, Bits: 5}
	TexMtxEmbossSource = Field{Start: 12, Bits: 3}
	TexMtxEmbossLight  = Field{Start: 15, Bits: 3}
)

// PostMtxInfo fields.
var (
	PostMtxIndex     = Field{Start: 0, Bits: 6}
	PostMtxNormalize = Field{Start: 8, Bits: 1}
)

// LitChannel fields.
var (
	LitMatSource      = Field{Start: 0, Bits: 1}
	LitEnableLighting = Field{Start: 1, Bits: 1}
	LitLightMask0_3   = Field{Start: 2, Bits: 4}
	LitAmbSource      = Field{Start: 6, Bits: 1}
	LitDiffuseFunc    = Field{Start: 7, Bits: 2}
	LitAttnFunc       = Field{Start: 9, Bits: 2}
	LitLightMask4_7   = Field{Start: 11, Bits: 4}
)

// NumTexGenCount is the texgen count field of the numTexGens register.
var NumTexGenCount = Field{Start: 0, Bits: 4}

// NumColorChansCount is the channel count field of the numColorChans register.
var NumColorChansCount = Field{Start: 0, Bits: 2}

// DualTexEnabled is the enable bit of the dual texture transform register.
var DualTexEnabled = Field{Start: 0, Bits: 1}

// TexMtxInfo is the packed per-texgen configuration word.
type TexMtxInfo uint32

// Projection returns the texgen output projection.
func (t TexMtxInfo) Projection() TexProjection {
	return TexProjection(TexMtxProjection.Extract(uint32(t)))
}

// InputForm returns the input form of the source row.
func (t TexMtxInfo) InputForm() InputForm {
	return InputForm(TexMtxInputForm.Extract(uint32(t)))
}

// TexGenType returns the generation type.
func (t TexMtxInfo) TexGenType() TexGenType {
	return TexGenType(TexMtxTexGenType.Extract(uint32(t)))
}

// SourceRow returns the input row the texgen reads.
func (t TexMtxInfo) SourceRow() SourceRow {
	return SourceRow(TexMtxSourceRow.Extract(uint32(t)))
}

// EmbossSource returns the texgen whose result is perturbed by emboss mapping.
func (t TexMtxInfo) EmbossSource() uint8 {
	return uint8(TexMtxEmbossSource.Extract(uint32(t)))
}

// EmbossLight returns the light used by emboss mapping.
func (t TexMtxInfo) EmbossLight() uint8 {
	return uint8(TexMtxEmbossLight.Extract(uint32(t)))
}

// PostMtxInfo is the packed per-texgen dual transform word.
type PostMtxInfo uint32

// Index returns the base row of the post-transform matrix.
func (p PostMtxInfo) Index() uint8 {
	return uint8(PostMtxIndex.Extract(uint32(p)))
}

// Normalize reports whether the texgen result is normalized before the post transform.
func (p PostMtxInfo) Normalize() bool {
	return PostMtxNormalize.Extract(uint32(p)) != 0
}

// LitChannel is the packed color or alpha lighting channel control word.
type LitChannel uint32

// MatSource reports whether the material color comes from the vertex.
func (l LitChannel) MatSource() bool { return LitMatSource.Extract(uint32(l)) != 0 }

// EnableLighting reports whether lighting is enabled for the channel.
func (l LitChannel) EnableLighting() bool { return LitEnableLighting.Extract(uint32(l)) != 0 }

// AmbSource reports whether the ambient color comes from the vertex.
func (l LitChannel) AmbSource() bool { return LitAmbSource.Extract(uint32(l)) != 0 }

// DiffuseFunc returns the diffuse function.
func (l LitChannel) DiffuseFunc() DiffuseFunc {
	return DiffuseFunc(LitDiffuseFunc.Extract(uint32(l)))
}

// AttnFunc returns the attenuation function.
func (l LitChannel) AttnFunc() AttenuationFunc {
	return AttenuationFunc(LitAttnFunc.Extract(uint32(l)))
}

// LightMask returns the 8-bit mask of lights enabled for the channel.
func (l LitChannel) LightMask() uint8 {
	return uint8(LitLightMask0_3.Extract(uint32(l)) | LitLightMask4_7.Extract(uint32(l))<<4)
}
