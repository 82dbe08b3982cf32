// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package xf

import (
	"errors"
	"fmt"
)

// Texgen decode errors.
var (
	ErrTexGenIndex         = errors.New("xf: texgen index out of range")
	ErrForwardEmbossSource = errors.New("xf: emboss source does not precede texgen")
)

// TexGen is the decoded configuration of one texture coordinate generator.
//
// EmbossLight and EmbossSource only mean something when Type is
// TexGenEmbossMap. PostMatrixBase and NormalizeBeforePost only mean
// something when HasPostMatrix is set.
type TexGen struct {
	SourceRow  SourceRow
	InputForm  InputForm
	Type       TexGenType
	Projection TexProjection

	EmbossLight  uint8
	EmbossSource uint8

	HasPostMatrix       bool
	PostMatrixBase      uint8
	NormalizeBeforePost bool
}

// TexMtxInfoOf packs the texMtxInfo fields of g.
func TexMtxInfoOf(g TexGen) TexMtxInfo {
	var w uint32
	w = TexMtxProjection.Insert(w, uint32(g.Projection))
	w = TexMtxInputForm.Insert(w, uint32(g.InputForm))
	w = TexMtxTexGenType.Insert(w, uint32(g.Type))
	w = TexMtxSourceRow.Insert(w, uint32(g.SourceRow))
	w = TexMtxEmbossSource.Insert(w, uint32(g.EmbossSource))
	w = TexMtxEmbossLight.Insert(w, uint32(g.EmbossLight))
	return TexMtxInfo(w)
}

// PostMtxInfoOf packs the postMtxInfo fields of g.
func PostMtxInfoOf(g TexGen) PostMtxInfo {
	var w uint32
	w = PostMtxIndex.Insert(w, uint32(g.PostMatrixBase))
	if g.NormalizeBeforePost {
		w = PostMtxNormalize.Insert(w, 1)
	}
	return PostMtxInfo(w)
}

// SetTexGen stores g into the texMtxInfo and postMtxInfo registers of texgen i.
func (m *Memory) SetTexGen(i int, g TexGen) error {
	if i < 0 || i >= MaxTexGens {
		return fmt.Errorf("%w: %d", ErrTexGenIndex, i)
	}
	m.TexMtxInfo[i] = TexMtxInfoOf(g)
	m.PostMtxInfo[i] = PostMtxInfoOf(g)
	return nil
}

// TexGen decodes texgen i. Post matrix fields are populated only when the
// dual texture transform is enabled.
func (m *Memory) TexGen(i int) (TexGen, error) {
	if i < 0 || i >= MaxTexGens {
		return TexGen{}, fmt.Errorf("%w: %d", ErrTexGenIndex, i)
	}
	info := m.TexMtxInfo[i]
	g := TexGen{
		SourceRow:  info.SourceRow(),
		InputForm:  info.InputForm(),
		Type:       info.TexGenType(),
		Projection: info.Projection(),
	}
	if g.Type == TexGenEmbossMap {
		g.EmbossLight = info.EmbossLight()
		g.EmbossSource = info.EmbossSource()
	}
	if m.DualTexEnabled() {
		post := m.PostMtxInfo[i]
		g.HasPostMatrix = true
		g.PostMatrixBase = post.Index()
		g.NormalizeBeforePost = post.Normalize()
	}
	return g, nil
}

// TexGens decodes every active texgen.
//
// An emboss texgen must name a source texgen with a lower index; anything
// else is a configuration error.
func (m *Memory) TexGens() ([]TexGen, error) {
	n := m.NumTexGens()
	if n > MaxTexGens {
		return nil, fmt.Errorf("%w: count %d", ErrTexGenIndex, n)
	}
	gens := make([]TexGen, n)
	for i := range gens {
		g, err := m.TexGen(i)
		if err != nil {
			return nil, err
		}
		if g.Type == TexGenEmbossMap && int(g.EmbossSource) >= i {
			return nil, fmt.Errorf("%w: texgen %d reads texgen %d", ErrForwardEmbossSource, i, g.EmbossSource)
		}
		gens[i] = g
	}
	return gens, nil
}
