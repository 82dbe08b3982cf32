// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import (
	"fmt"
	"hash/fnv"

	"github.com/gogpu/ubershader/xf"
)

// MaxTexGens is the largest texgen count a Uid can carry.
const MaxTexGens = xf.MaxTexGens

// Uid identifies one generated vertex uber-shader.
//
// Uid is comparable; equal field values mean the same program.
type Uid struct {
	NumTexGens       uint8
	PerPixelLighting bool
}

// NewUid returns a validated uid.
func NewUid(numTexGens int, perPixelLighting bool) (Uid, error) {
	if numTexGens < 0 || numTexGens > MaxTexGens {
		return Uid{}, fmt.Errorf("%w: %d", ErrTexGenCount, numTexGens)
	}
	return Uid{NumTexGens: uint8(numTexGens), PerPixelLighting: perPixelLighting}, nil
}

// Validate reports whether the uid is within range.
func (u Uid) Validate() error {
	if u.NumTexGens > MaxTexGens {
		return fmt.Errorf("%w: %d", ErrTexGenCount, u.NumTexGens)
	}
	return nil
}

// Bytes returns the canonical encoding: texgen count in bits 0-3 and the
// per-pixel lighting flag in bit 4.
func (u Uid) Bytes() []byte {
	b := u.NumTexGens & 0xf
	if u.PerPixelLighting {
		b |= 1 << 4
	}
	return []byte{b}
}

// Hash returns the FNV-1a hash of the canonical encoding.
func (u Uid) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write(u.Bytes()) // fnv.Write never returns an error
	return h.Sum64()
}

// String returns a short label such as "vs-t3-ppl".
func (u Uid) String() string {
	if u.PerPixelLighting {
		return fmt.Sprintf("vs-t%d-ppl", u.NumTexGens)
	}
	return fmt.Sprintf("vs-t%d", u.NumTexGens)
}

// GetUid decodes the uid for the current transform unit state.
//
// Per-pixel lighting is used only when pixelLighting is set, at least one
// color channel is active and the vertex format carries a normal. An emboss
// texgen whose source does not precede it is rejected with
// [xf.ErrForwardEmbossSource].
func GetUid(mem *xf.Memory, components xf.Components, pixelLighting bool) (Uid, error) {
	n := mem.NumTexGens()
	if n > MaxTexGens {
		return Uid{}, fmt.Errorf("%w: register holds %d", ErrTexGenCount, n)
	}
	if _, err := mem.TexGens(); err != nil {
		return Uid{}, fmt.Errorf("vertex: decode texgens: %w", err)
	}
	ppl := pixelLighting && mem.NumColorChannels() > 0 && components.Has(xf.HasNrm0)
	return Uid{NumTexGens: uint8(n), PerPixelLighting: ppl}, nil
}
