// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"
	"strings"
)

// ShaderModel represents a DirectX Shader Model version.
type ShaderModel uint8

// Supported Shader Model versions.
const (
	// ShaderModel5_0 is the base SM5 version (DirectX 11).
	ShaderModel5_0 ShaderModel = iota

	// ShaderModel5_1 provides improved resource binding.
	ShaderModel5_1

	// ShaderModel6_0 introduces wave intrinsics and DXIL.
	ShaderModel6_0

	ShaderModel6_1
	ShaderModel6_2
	ShaderModel6_3
	ShaderModel6_4
	ShaderModel6_5
	ShaderModel6_6
	ShaderModel6_7
)

// String returns a human-readable representation of the shader model.
// Example: "SM 5.0"
func (sm ShaderModel) String() string {
	major, minor := sm.version()
	return fmt.Sprintf("SM %d.%d", major, minor)
}

// ProfileSuffix returns the shader profile suffix for this model.
// Used to construct profiles like "vs_5_0".
func (sm ShaderModel) ProfileSuffix() string {
	major, minor := sm.version()
	return fmt.Sprintf("%d_%d", major, minor)
}

func (sm ShaderModel) version() (major, minor uint8) {
	if sm > ShaderModel6_7 {
		return 5, 0
	}
	if sm <= ShaderModel5_1 {
		return 5, uint8(sm)
	}
	return 6, uint8(sm - ShaderModel6_0)
}

// SupportsDXIL returns true if this shader model compiles to DXIL rather than DXBC.
func (sm ShaderModel) SupportsDXIL() bool {
	return sm >= ShaderModel6_0
}

// MarshalText encodes the model as "major.minor".
func (sm ShaderModel) MarshalText() ([]byte, error) {
	major, minor := sm.version()
	return fmt.Appendf(nil, "%d.%d", major, minor), nil
}

// UnmarshalText parses "5.0", "6_2" or "SM 6.0".
func (sm *ShaderModel) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "SM ")
	s = strings.ReplaceAll(s, "_", ".")
	var major, minor int
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return fmt.Errorf("host: invalid shader model %q", text)
	}
	switch {
	case major == 5 && minor <= 1:
		*sm = ShaderModel(minor)
	case major == 6 && minor <= 7:
		*sm = ShaderModel6_0 + ShaderModel(minor)
	default:
		return fmt.Errorf("host: unsupported shader model %q", text)
	}
	return nil
}
