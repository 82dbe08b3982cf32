// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vertex

import "iter"

// NumUids is the number of distinct vertex uber-shader uids.
const NumUids = (MaxTexGens + 1) * 2

// Size hint model, in bytes of generated source.
const (
	sizeHintBase          = 11000
	sizeHintPerTexGen     = 180
	sizeHintPixelLighting = 300
)

// EnumerateUids yields every uid with an estimate of its generated source
// size. The order is fixed: texgen counts 0..8, lighting off before on.
// The sequence can be ranged over any number of times.
func EnumerateUids() iter.Seq2[Uid, int] {
	return func(yield func(Uid, int) bool) {
		for n := 0; n <= MaxTexGens; n++ {
			for _, ppl := range [...]bool{false, true} {
				uid := Uid{NumTexGens: uint8(n), PerPixelLighting: ppl}
				if !yield(uid, SizeHint(uid)) {
					return
				}
			}
		}
	}
}

// SizeHint estimates the generated source size of uid in bytes.
func SizeHint(uid Uid) int {
	hint := sizeHintBase + sizeHintPerTexGen*int(uid.NumTexGens)
	if uid.PerPixelLighting {
		hint += sizeHintPixelLighting
	}
	return hint
}
