// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xf

import "fmt"

// SourceRow selects the input data a texgen reads.
type SourceRow uint8

const (
	SourceGeom      SourceRow = 0 // vertex position
	SourceNormal    SourceRow = 1
	SourceColors    SourceRow = 2
	SourceBinormalT SourceRow = 3
	SourceBinormalB SourceRow = 4
	SourceTex0      SourceRow = 5
	SourceTex1      SourceRow = 6
	SourceTex2      SourceRow = 7
	SourceTex3      SourceRow = 8
	SourceTex4      SourceRow = 9
	SourceTex5      SourceRow = 10
	SourceTex6      SourceRow = 11
	SourceTex7      SourceRow = 12
)

// IsTex reports whether the row is one of the raw texture coordinate inputs.
func (s SourceRow) IsTex() bool {
	return s >= SourceTex0 && s <= SourceTex7
}

// TexIndex returns the raw texture coordinate input for a Tex row.
func (s SourceRow) TexIndex() int {
	return int(s - SourceTex0)
}

// String returns the row name.
func (s SourceRow) String() string {
	switch {
	case s == SourceGeom:
		return "Geom"
	case s == SourceNormal:
		return "Normal"
	case s == SourceColors:
		return "Colors"
	case s == SourceBinormalT:
		return "BinormalT"
	case s == SourceBinormalB:
		return "BinormalB"
	case s.IsTex():
		return fmt.Sprintf("Tex%d", s.TexIndex())
	default:
		return fmt.Sprintf("SourceRow(%d)", uint8(s))
	}
}

// InputForm selects how the third input component is formed.
type InputForm uint8

const (
	// InputAB11 forces the third component to 1.0.
	InputAB11 InputForm = 0
	InputABC1 InputForm = 1
)

// String returns the input form name.
func (f InputForm) String() string {
	switch f {
	case InputAB11:
		return "AB11"
	case InputABC1:
		return "ABC1"
	default:
		return fmt.Sprintf("InputForm(%d)", uint8(f))
	}
}

// TexGenType selects how a texgen produces its output.
type TexGenType uint8

const (
	TexGenRegular      TexGenType = 0
	TexGenEmbossMap    TexGenType = 1
	TexGenColorStrgbc0 TexGenType = 2
	TexGenColorStrgbc1 TexGenType = 3
)

// String returns the texgen type name.
func (t TexGenType) String() string {
	switch t {
	case TexGenRegular:
		return "Regular"
	case TexGenEmbossMap:
		return "EmbossMap"
	case TexGenColorStrgbc0:
		return "ColorChannel0"
	case TexGenColorStrgbc1:
		return "ColorChannel1"
	default:
		return fmt.Sprintf("TexGenType(%d)", uint8(t))
	}
}

// TexProjection selects between 2D and projective texture coordinates.
type TexProjection uint8

const (
	ProjectionST  TexProjection = 0
	ProjectionSTQ TexProjection = 1
)

// String returns the projection name.
func (p TexProjection) String() string {
	switch p {
	case ProjectionST:
		return "ST"
	case ProjectionSTQ:
		return "STQ"
	default:
		return fmt.Sprintf("TexProjection(%d)", uint8(p))
	}
}

// DiffuseFunc is the lighting diffuse function.
type DiffuseFunc uint8

const (
	DiffuseNone  DiffuseFunc = 0
	DiffuseSign  DiffuseFunc = 1
	DiffuseClamp DiffuseFunc = 2
)

// String returns the diffuse function name.
func (d DiffuseFunc) String() string {
	switch d {
	case DiffuseNone:
		return "None"
	case DiffuseSign:
		return "Sign"
	case DiffuseClamp:
		return "Clamp"
	default:
		return fmt.Sprintf("DiffuseFunc(%d)", uint8(d))
	}
}

// AttenuationFunc is the lighting attenuation function.
type AttenuationFunc uint8

const (
	AttnNone AttenuationFunc = 0
	AttnSpec AttenuationFunc = 1
	AttnDir  AttenuationFunc = 2
	AttnSpot AttenuationFunc = 3
)

// String returns the attenuation function name.
func (a AttenuationFunc) String() string {
	switch a {
	case AttnNone:
		return "None"
	case AttnSpec:
		return "Spec"
	case AttnDir:
		return "Dir"
	case AttnSpot:
		return "Spot"
	default:
		return fmt.Sprintf("AttenuationFunc(%d)", uint8(a))
	}
}
