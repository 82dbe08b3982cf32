// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package host

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML host description.
//
// Keys that are absent keep the defaults of the API named by the "api" key.
// Unknown keys are rejected.
//
//	api: opengl
//	glsl_version: 330
//	msaa: true
//	bitfield: false
func Load(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("host: read config: %w", err)
	}

	var head struct {
		API APIType `yaml:"api"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("host: parse config: %w", err)
	}
	if head.API == 0 {
		return Config{}, fmt.Errorf("host: config has no api key: %w", ErrUnknownAPI)
	}

	cfg := Defaults(head.API)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("host: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML host description from path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("host: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("host: encode config: %w", err)
	}
	return enc.Close()
}
