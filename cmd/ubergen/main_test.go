// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ubershader"
	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/vertex"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGen(t *testing.T) {
	out, _, err := run(t, "gen", "--api", "d3d11", "--texgens", "3", "--ppl")
	require.NoError(t, err)
	want, err := vertex.Generate(vertex.Uid{NumTexGens: 3, PerPixelLighting: true}, host.Defaults(host.APID3D11))
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestGenToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vs.glsl")
	out, errOut, err := run(t, "gen", "--api", "vulkan", "--texgens", "8", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "vs-t8")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "#version 450"))
}

func TestGenErrors(t *testing.T) {
	_, _, err := run(t, "gen", "--texgens", "9")
	assert.ErrorIs(t, err, vertex.ErrTexGenCount)

	_, _, err = run(t, "gen", "--api", "metal")
	assert.ErrorIs(t, err, host.ErrUnknownAPI)
}

func TestUids(t *testing.T) {
	out, _, err := run(t, "uids")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, vertex.NumUids+1)
	assert.Contains(t, lines[1], "vs-t0 ")
	assert.Contains(t, lines[vertex.NumUids], "vs-t8-ppl")
}

func TestPrecompile(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "precompile", "--api", "d3d11", "-q", "-j", "2", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "18 programs for d3d11 vs_5_0")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, vertex.NumUids)
	_, err = os.Stat(filepath.Join(dir, "vs-t4-ppl.hlsl"))
	assert.NoError(t, err)
}

func TestPrecompileProgress(t *testing.T) {
	_, errOut, err := run(t, "precompile", "--api", "opengl")
	require.NoError(t, err)
	assert.Contains(t, errOut, "precompile 430 core")
}

func TestHostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: opengl\nglsl_version: 300 es\nbitfield: false\n"), 0o644))

	out, _, err := run(t, "gen", "--host", path, "--texgens", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "#version 300 es"))
	assert.Contains(t, out, "uint bitfieldExtract(uint val")

	out, _, err = run(t, "host", "--host", path, "--api", "vulkan")
	require.NoError(t, err)
	assert.Contains(t, out, "api: vulkan")
	assert.Contains(t, out, "bitfield: false")
}

func TestHostFileAPIOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: d3d11\nmsaa: true\n"), 0o644))

	out, _, err := run(t, "gen", "--host", path, "--api", "opengl", "--texgens", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "#version 430 core"), out[:min(len(out), 40)])
	assert.Contains(t, out, "uint bitfieldExtract(uint val", "file keeps bitfield off")

	out, _, err = run(t, "host", "--host", path, "--api", "opengl")
	require.NoError(t, err)
	assert.Contains(t, out, "api: opengl")
	assert.Contains(t, out, "msaa: true")
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.hlsl")
	src, err := vertex.Generate(vertex.Uid{NumTexGens: 2}, host.Defaults(host.APID3D11))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, []byte(src), 0o644))

	bad := filepath.Join(dir, "bad.hlsl")
	require.NoError(t, os.WriteFile(bad, []byte("float4 linear;\n"), 0o644))

	_, _, err = run(t, "lint", "--api", "d3d11", good)
	require.NoError(t, err)

	out, _, err := run(t, "lint", "--api", "d3d11", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out, "bad.hlsl:1:8:")
}

func TestVerbose(t *testing.T) {
	orig := ubershader.Logger()
	t.Cleanup(func() { ubershader.SetLogger(orig) })

	_, errOut, err := run(t, "precompile", "--api", "vulkan", "-q", "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "precompile: done")
}
