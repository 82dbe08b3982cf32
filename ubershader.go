// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ubershader generates vertex uber-shaders for an emulated
// fixed-function transform unit.
//
// An uber-shader covers every transform unit configuration that shares a
// texgen count and per-pixel lighting choice. Everything else, from the
// texgen source rows to the lighting functions, is read from the uniform
// block at run time, so 18 programs cover the whole state space and can be
// compiled ahead of time.
//
// Example:
//
//	src, err := ubershader.GenerateVertex(&mem, components, host.Defaults(host.APIVulkan))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(src.Uid, len(src.Text))
//
// The vertex package holds the generator, softxf a CPU evaluation of the
// same formulas, lint a checker for the emitted text and precompile the
// concurrent warm-up of all programs.
package ubershader

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/vertex"
	"github.com/gogpu/ubershader/xf"
)

// Source is one generated program.
type Source struct {
	Uid vertex.Uid
	// Hash identifies the program among all uids and host configurations.
	Hash uint64
	Text string
}

// GenerateVertex decodes the uid from the live transform unit state and
// emits its program. Per-pixel lighting is requested when the host
// supports it.
func GenerateVertex(mem *xf.Memory, components xf.Components, hc host.Config) (Source, error) {
	if err := hc.Validate(); err != nil {
		return Source{}, fmt.Errorf("ubershader: %w", err)
	}
	uid, err := vertex.GetUid(mem, components, hc.PixelLighting)
	if err != nil {
		return Source{}, fmt.Errorf("ubershader: %w", err)
	}
	text, err := vertex.Generate(uid, hc)
	if err != nil {
		return Source{}, fmt.Errorf("ubershader: %w", err)
	}

	hash := KeyHash(uid, hc.Bits())
	Logger().Debug("ubershader: generated vertex program",
		"uid", uid.String(), "profile", hc.Profile(), "hash", hash, "bytes", len(text))
	return Source{Uid: uid, Hash: hash, Text: text}, nil
}

// KeyHash returns the FNV-1a hash of a uid and packed host bits.
func KeyHash(uid vertex.Uid, hostBits uint32) uint64 {
	h := fnv.New64a()
	h.Write(uid.Bytes())
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], hostBits)
	h.Write(b[:])
	return h.Sum64()
}
