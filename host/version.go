// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"
	"strings"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	Version330 = Version{Major: 3, Minor: 30} // OpenGL 3.3 Core
	Version400 = Version{Major: 4, Minor: 0}  // OpenGL 4.0
	Version430 = Version{Major: 4, Minor: 30} // OpenGL 4.3
	Version450 = Version{Major: 4, Minor: 50} // OpenGL 4.5, Vulkan GLSL

	VersionES300 = Version{Major: 3, Minor: 0, ES: true}  // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true} // ES 3.1
	VersionES320 = Version{Major: 3, Minor: 20, ES: true} // ES 3.2
)

// String returns the version as a #version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// Number returns just the numeric version (e.g., 330, 300).
func (v Version) Number() int {
	return int(v.Major)*100 + int(v.Minor)
}

// SupportsBitfieldExtract reports whether bitfieldExtract is a built-in.
// It arrived in GLSL 4.00 and GLSL ES 3.10.
func (v Version) SupportsBitfieldExtract() bool {
	if v.ES {
		return v.Number() >= 310
	}
	return v.Number() >= 400
}

// SupportsBindingLayout reports whether layout(binding = N) is core.
// Desktop GLSL before 4.20 needs GL_ARB_shading_language_420pack.
func (v Version) SupportsBindingLayout() bool {
	if v.ES {
		return v.Number() >= 310
	}
	return v.Number() >= 420
}

// MarshalText encodes the version as "330" or "300 es".
func (v Version) MarshalText() ([]byte, error) {
	if v.ES {
		return fmt.Appendf(nil, "%d es", v.Number()), nil
	}
	return fmt.Appendf(nil, "%d", v.Number()), nil
}

// UnmarshalText parses "330", "450 core" or "310 es".
func (v *Version) UnmarshalText(text []byte) error {
	fields := strings.Fields(string(text))
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("host: invalid GLSL version %q", text)
	}
	var n int
	if _, err := fmt.Sscanf(fields[0], "%d", &n); err != nil || n < 0 || n > 999 || (n > 0 && n < 100) {
		return fmt.Errorf("host: invalid GLSL version %q", text)
	}
	es := false
	if len(fields) == 2 {
		switch fields[1] {
		case "es":
			es = true
		case "core":
		default:
			return fmt.Errorf("host: invalid GLSL profile %q", fields[1])
		}
	}
	*v = Version{Major: uint8(n / 100), Minor: uint8(n % 100), ES: es}
	return nil
}
