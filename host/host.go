// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package host describes the capabilities of the host graphics API that
// generated shaders must run on.
//
// Capabilities never change what a generated program computes. They select
// output variable layouts, depth-range formulas and helper functions so that
// the same program is portable across host APIs.
package host

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors.
var (
	// ErrUnknownAPI is returned for an API tag that has no dialect.
	ErrUnknownAPI = errors.New("host: unknown API")

	// ErrMissingVersion is returned for an OpenGL config without a GLSL
	// version.
	ErrMissingVersion = errors.New("host: missing GLSL version")
)

// APIType identifies the host graphics API family.
type APIType uint8

const (
	APIOpenGL APIType = iota + 1
	APIVulkan
	APID3D11
)

// Dialect is a shading language surface.
type Dialect uint8

const (
	DialectGLSL Dialect = iota + 1
	DialectHLSL
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectGLSL:
		return "glsl"
	case DialectHLSL:
		return "hlsl"
	default:
		return fmt.Sprintf("Dialect(%d)", uint8(d))
	}
}

// String returns the API name.
func (a APIType) String() string {
	switch a {
	case APIOpenGL:
		return "opengl"
	case APIVulkan:
		return "vulkan"
	case APID3D11:
		return "d3d11"
	default:
		return fmt.Sprintf("APIType(%d)", uint8(a))
	}
}

// Dialect returns the shading language of the API.
func (a APIType) Dialect() Dialect {
	switch a {
	case APIOpenGL, APIVulkan:
		return DialectGLSL
	case APID3D11:
		return DialectHLSL
	default:
		return 0
	}
}

// MarshalText encodes the API name.
func (a APIType) MarshalText() ([]byte, error) {
	if a.Dialect() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAPI, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText parses an API name.
func (a *APIType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "opengl", "gl":
		*a = APIOpenGL
	case "vulkan", "vk":
		*a = APIVulkan
	case "d3d11", "d3d", "dx11":
		*a = APID3D11
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAPI, text)
	}
	return nil
}

// Config is the host capability set consumed by shader generation.
type Config struct {
	API APIType `yaml:"api"`

	MSAA bool `yaml:"msaa"`
	SSAA bool `yaml:"ssaa"`

	// GeometryShaders enables structured output blocks on GLSL hosts.
	GeometryShaders bool `yaml:"geometry_shaders"`

	// DepthClamp lets the shader clip depth itself through clip distances.
	DepthClamp bool `yaml:"depth_clamp"`

	// ClipControl means the host clip space has a native 0..1 depth range.
	ClipControl bool `yaml:"clip_control"`

	// Bitfield means the host compiler provides bitfieldExtract. It only
	// takes effect on GLSL versions that have the built-in; see
	// BitfieldBuiltin.
	Bitfield bool `yaml:"bitfield"`

	// BindingLayout means interpolation qualifiers may be used bare inside
	// interface blocks and uniform blocks can carry a binding.
	BindingLayout bool `yaml:"binding_layout"`

	// PixelLighting means the backend can defer lighting to the pixel stage.
	PixelLighting bool `yaml:"pixel_lighting"`

	GLSLVersion Version     `yaml:"glsl_version"`
	ShaderModel ShaderModel `yaml:"shader_model"`
}

// Defaults returns the usual capability set of an API.
func Defaults(api APIType) Config {
	switch api {
	case APIOpenGL:
		return Config{
			API:             APIOpenGL,
			GeometryShaders: true,
			DepthClamp:      true,
			ClipControl:     false,
			Bitfield:        true,
			BindingLayout:   true,
			PixelLighting:   true,
			GLSLVersion:     Version430,
		}
	case APIVulkan:
		return Config{
			API:             APIVulkan,
			GeometryShaders: true,
			DepthClamp:      true,
			ClipControl:     true,
			Bitfield:        true,
			BindingLayout:   true,
			PixelLighting:   true,
			GLSLVersion:     Version450,
		}
	case APID3D11:
		return Config{
			API:             APID3D11,
			GeometryShaders: true,
			DepthClamp:      true,
			ClipControl:     true,
			Bitfield:        false,
			BindingLayout:   true,
			PixelLighting:   true,
			ShaderModel:     ShaderModel5_0,
		}
	default:
		return Config{API: api}
	}
}

// Validate checks that the configuration names a known API and, for
// OpenGL, a GLSL version.
func (c Config) Validate() error {
	if c.API.Dialect() == 0 {
		return fmt.Errorf("%w: %d", ErrUnknownAPI, uint8(c.API))
	}
	if c.API == APIOpenGL && c.GLSLVersion.Major == 0 {
		return ErrMissingVersion
	}
	return nil
}

// ShadingVersion returns the GLSL version programs are written against.
// Vulkan hosts without an explicit version use GLSL 4.50.
func (c Config) ShadingVersion() Version {
	if c.API == APIVulkan && c.GLSLVersion.Major == 0 {
		return Version450
	}
	return c.GLSLVersion
}

// BitfieldBuiltin reports whether generated programs may call the
// bitfieldExtract built-in instead of defining their own. HLSL has no such
// built-in.
func (c Config) BitfieldBuiltin() bool {
	return c.Bitfield && c.Dialect() == DialectGLSL && c.ShadingVersion().SupportsBitfieldExtract()
}

// Dialect returns the shading language for the configured API.
func (c Config) Dialect() Dialect {
	return c.API.Dialect()
}

// Capability bits used by Bits.
const (
	BitMSAA uint32 = 1 << iota
	BitSSAA
	BitGeometryShaders
	BitDepthClamp
	BitClipControl
	BitBitfield
	BitBindingLayout
	BitPixelLighting
)

// Bits packs the configuration into a stable word for cache keys.
//
// Layout: capability flags in bits 0-7, API in bits 8-11, GLSL version
// number in bits 12-21, ES flag in bit 22, shader model in bits 24-27.
// Fields of the other dialect are left out. PixelLighting is included
// because it changes which uids the host decodes.
func (c Config) Bits() uint32 {
	var b uint32
	flags := [...]bool{
		c.MSAA, c.SSAA, c.GeometryShaders, c.DepthClamp,
		c.ClipControl, c.Bitfield, c.BindingLayout, c.PixelLighting,
	}
	for i, on := range flags {
		if on {
			b |= 1 << uint(i)
		}
	}
	b |= uint32(c.API&0xf) << 8
	switch c.Dialect() {
	case DialectGLSL:
		b |= uint32(c.GLSLVersion.Number()&0x3ff) << 12
		if c.GLSLVersion.ES {
			b |= 1 << 22
		}
	case DialectHLSL:
		b |= uint32(c.ShaderModel&0xf) << 24
	}
	return b
}

// Profile returns the compiler target of a vertex shader: an HLSL profile
// such as "vs_5_0" or a GLSL #version value such as "450 core".
func (c Config) Profile() string {
	if c.Dialect() == DialectHLSL {
		return "vs_" + c.ShaderModel.ProfileSuffix()
	}
	return c.ShadingVersion().String()
}
