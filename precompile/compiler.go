// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package precompile

import (
	"context"

	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/lint"
	"github.com/gogpu/ubershader/vertex"
)

// Program is one generated program handed to a Compiler.
type Program struct {
	Uid  vertex.Uid
	Host host.Config
	// Profile is the compiler target, such as "vs_5_0" or "450 core".
	Profile string
	Source  string
}

// Compiler turns generated source into a host binary.
// Implementations must be safe for concurrent use.
type Compiler interface {
	Compile(ctx context.Context, p Program) ([]byte, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(ctx context.Context, p Program) ([]byte, error)

// Compile calls f.
func (f CompilerFunc) Compile(ctx context.Context, p Program) ([]byte, error) {
	return f(ctx, p)
}

// LintCompiler checks the source with lint and returns it unchanged.
// It stands in for a host compiler where none is available.
type LintCompiler struct{}

// Compile implements Compiler.
func (LintCompiler) Compile(ctx context.Context, p Program) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := lint.Check(p.Source, p.Host.Dialect()); err != nil {
		return nil, err
	}
	return []byte(p.Source), nil
}
