// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package lint checks generated shader source for defects a host compiler
// would reject: stray characters, unbalanced brackets and declarations
// that reuse reserved words.
//
// It is not a parser. Declarations are recognized by shape, a type name
// followed by an identifier, which covers the declarations the vertex
// generator emits.
package lint

import (
	"fmt"
	"strings"

	"github.com/gogpu/ubershader/host"
)

// Issue is one finding.
type Issue struct {
	Line    int
	Column  int
	Message string
}

// String formats the issue as line:column: message.
func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

// Error collects the issues found in one program.
type Error struct {
	Dialect host.Dialect
	Issues  []Issue
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("lint %s: %s", e.Dialect, e.Issues[0])
	}
	return fmt.Sprintf("lint %s: %s (and %d more)", e.Dialect, e.Issues[0], len(e.Issues)-1)
}

// Check lints src as dialect d. It returns nil or an *Error.
func Check(src string, d host.Dialect) error {
	issues := Issues(src, d)
	if len(issues) == 0 {
		return nil
	}
	return &Error{Dialect: d, Issues: issues}
}

// Issues returns every issue in src, in source order per category.
func Issues(src string, d host.Dialect) []Issue {
	tokens := NewLexer(src).Tokenize()

	var issues []Issue
	for _, t := range tokens {
		if t.Kind != TokenError {
			continue
		}
		msg := fmt.Sprintf("unexpected %q", t.Lexeme)
		if t.Lexeme == "/*" {
			msg = "unterminated block comment"
		}
		issues = append(issues, Issue{t.Line, t.Column, msg})
	}
	issues = append(issues, checkBrackets(tokens)...)
	issues = append(issues, checkDeclarations(tokens, d)...)
	return issues
}

var closerOf = map[TokenKind]TokenKind{
	TokenLeftParen:   TokenRightParen,
	TokenLeftBrace:   TokenRightBrace,
	TokenLeftBracket: TokenRightBracket,
}

func checkBrackets(tokens []Token) []Issue {
	var issues []Issue
	var open []Token
	for _, t := range tokens {
		switch t.Kind {
		case TokenLeftParen, TokenLeftBrace, TokenLeftBracket:
			open = append(open, t)
		case TokenRightParen, TokenRightBrace, TokenRightBracket:
			if len(open) == 0 {
				issues = append(issues, Issue{t.Line, t.Column, fmt.Sprintf("unmatched %q", t.Lexeme)})
				continue
			}
			top := open[len(open)-1]
			open = open[:len(open)-1]
			if closerOf[top.Kind] != t.Kind {
				issues = append(issues, Issue{t.Line, t.Column,
					fmt.Sprintf("%q closes %q opened at %d:%d", t.Lexeme, top.Lexeme, top.Line, top.Column)})
			}
		}
	}
	for _, t := range open {
		issues = append(issues, Issue{t.Line, t.Column, fmt.Sprintf("unclosed %q", t.Lexeme)})
	}
	return issues
}

// builtinTypes are the type names shared by both dialects once the GLSL
// prelude has defined the HLSL vector names.
var builtinTypes = func() map[string]struct{} {
	m := map[string]struct{}{"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "half": {}, "double": {}}
	for _, base := range []string{"bool", "int", "uint", "float", "half", "double"} {
		for n := 2; n <= 4; n++ {
			m[fmt.Sprintf("%s%d", base, n)] = struct{}{}
		}
	}
	for _, base := range []string{"vec", "ivec", "uvec", "bvec", "dvec", "mat"} {
		for n := 2; n <= 4; n++ {
			m[fmt.Sprintf("%s%d", base, n)] = struct{}{}
		}
	}
	return m
}()

// endsDeclarator reports whether t may follow a declared name.
func endsDeclarator(t Token) bool {
	switch t.Kind {
	case TokenSemicolon, TokenComma, TokenLeftBracket, TokenRightParen, TokenColon:
		return true
	case TokenOperator:
		return t.Lexeme == "="
	default:
		return false
	}
}

func checkDeclarations(tokens []Token, d host.Dialect) []Issue {
	structs := make(map[string]struct{})
	isType := func(name string) bool {
		if _, ok := builtinTypes[name]; ok {
			return true
		}
		_, ok := structs[name]
		return ok
	}

	var issues []Issue
	for i := 0; i+2 < len(tokens); i++ {
		t, name, next := tokens[i], tokens[i+1], tokens[i+2]
		if t.Kind != TokenIdent || name.Kind != TokenIdent {
			continue
		}
		if t.Lexeme == "struct" {
			structs[name.Lexeme] = struct{}{}
			if Reserved(d, name.Lexeme) {
				issues = append(issues, Issue{name.Line, name.Column, fmt.Sprintf("struct name %q is reserved", name.Lexeme)})
			}
			continue
		}
		if !isType(t.Lexeme) || !endsDeclarator(next) {
			continue
		}
		switch {
		case Reserved(d, name.Lexeme):
			issues = append(issues, Issue{name.Line, name.Column, fmt.Sprintf("%q is reserved in %s", name.Lexeme, d)})
		case strings.Contains(name.Lexeme, "__"):
			issues = append(issues, Issue{name.Line, name.Column, fmt.Sprintf("%q contains a double underscore", name.Lexeme)})
		}
	}
	return issues
}
