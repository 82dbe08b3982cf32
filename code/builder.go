// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package code provides the append-only text builder used to emit shader
// source.
package code

import (
	"fmt"
	"strings"
)

// indentUnit is one level of indentation.
const indentUnit = "  "

// Builder accumulates shader source text. Text is only ever appended.
// A Builder is not safe for concurrent use; use one per generated program.
type Builder struct {
	out    strings.Builder
	indent int
}

// Grow reserves space for n more bytes.
func (b *Builder) Grow(n int) {
	b.out.Grow(n)
}

// Line writes one indented line followed by a newline.
// An empty line is written without indentation.
func (b *Builder) Line(s string) {
	if s != "" {
		b.writeIndent()
		b.out.WriteString(s)
	}
	b.out.WriteByte('\n')
}

// Linef writes one indented, formatted line followed by a newline.
func (b *Builder) Linef(format string, args ...any) {
	b.writeIndent()
	fmt.Fprintf(&b.out, format, args...)
	b.out.WriteByte('\n')
}

// Lines writes each line of a multi-line block at the current indentation.
// A trailing newline in block does not produce an extra empty line.
func (b *Builder) Lines(block string) {
	block = strings.TrimSuffix(block, "\n")
	for _, l := range strings.Split(block, "\n") {
		b.Line(l)
	}
}

func (b *Builder) writeIndent() {
	for i := 0; i < b.indent; i++ {
		b.out.WriteString(indentUnit)
	}
}

// Indent increases indentation.
func (b *Builder) Indent() {
	b.indent++
}

// Unindent decreases indentation, stopping at zero.
func (b *Builder) Unindent() {
	if b.indent > 0 {
		b.indent--
	}
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.out.Len()
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.out.String()
}
