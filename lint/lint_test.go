// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lint

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/ubershader/host"
	"github.com/gogpu/ubershader/vertex"
)

func TestLexer(t *testing.T) {
	src := "#define X(i) (a[(i)].x)\nuint v = 0x3fu + 1.0f * .5; // tail\n/* c */ o.y <<= 2u;"
	tokens := NewLexer(src).Tokenize()

	want := []struct {
		kind   TokenKind
		lexeme string
	}{
		{TokenDirective, "#define X(i) (a[(i)].x)"},
		{TokenIdent, "uint"},
		{TokenIdent, "v"},
		{TokenOperator, "="},
		{TokenIntLiteral, "0x3fu"},
		{TokenOperator, "+"},
		{TokenFloatLiteral, "1.0f"},
		{TokenOperator, "*"},
		{TokenFloatLiteral, ".5"},
		{TokenSemicolon, ";"},
		{TokenIdent, "o"},
		{TokenDot, "."},
		{TokenIdent, "y"},
		{TokenOperator, "<<="},
		{TokenIntLiteral, "2u"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Lexeme != w.lexeme {
			t.Errorf("token %d = %s %q, want %s %q", i, tokens[i].Kind, tokens[i].Lexeme, w.kind, w.lexeme)
		}
	}
	if got := tokens[10]; got.Line != 3 || got.Column != 9 {
		t.Errorf("o at %d:%d, want 3:9", got.Line, got.Column)
	}
}

func TestLexerDirectiveContinuation(t *testing.T) {
	tokens := NewLexer("#define A \\\n  1\nint").Tokenize()
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens: %v", len(tokens), tokens)
	}
	if tokens[1].Lexeme != "int" || tokens[1].Line != 3 {
		t.Errorf("got %q at line %d, want int at line 3", tokens[1].Lexeme, tokens[1].Line)
	}
}

func TestCheckClean(t *testing.T) {
	src := `struct Light {
  float4 pos;
};
cbuffer VSBlock {
  Light clights[8];
};
float4 main(float4 rawpos : POSITION) : SV_Position {
  [loop] for (uint i = 0u; i < 2u; i++) {
    rawpos.x = i > 0u ? rawpos.y : 1.0;
  }
  return rawpos;
}
`
	if err := Check(src, host.DialectHLSL); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestCheckIssues(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		dialect host.Dialect
		want    string
	}{
		{"unclosed brace", "void main() {\n", host.DialectGLSL, `1:13: unclosed "{"`},
		{"unmatched paren", "int a = 1);", host.DialectGLSL, `1:10: unmatched ")"`},
		{"mismatched", "int a[2);", host.DialectHLSL, `")" closes "[" opened at 1:6`},
		{"stray character", "int a = 1 @ 2;", host.DialectGLSL, `1:11: unexpected "@"`},
		{"bad literal", "int a = 1x;", host.DialectGLSL, `unexpected "1x"`},
		{"unterminated comment", "int a;\n/* open", host.DialectGLSL, "2:1: unterminated block comment"},
		{"glsl keyword", "float4 sample;", host.DialectGLSL, `"sample" is reserved in glsl`},
		{"glsl prefix", "float gl_Custom = 1.0;", host.DialectGLSL, `"gl_Custom" is reserved`},
		{"hlsl keyword", "float linear = 1.0;", host.DialectHLSL, `"linear" is reserved in hlsl`},
		{"hlsl parameter", "void f(uint point) {}", host.DialectHLSL, `"point" is reserved`},
		{"hlsl semantic", "struct S { float4 register : TEXCOORD0; };", host.DialectHLSL, `"register" is reserved`},
		{"hlsl shorthand", "float uint2 = 0.0;", host.DialectHLSL, `"uint2" is reserved`},
		{"struct member type", "struct S { int a; };\nS texture;", host.DialectGLSL, `"texture" is reserved`},
		{"struct name", "struct cbuffer { int a; };", host.DialectHLSL, `struct name "cbuffer"`},
		{"double underscore", "int a__b;", host.DialectGLSL, "double underscore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.src, tt.dialect)
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("Check() error = %v, want *Error", err)
			}
			if lerr.Dialect != tt.dialect {
				t.Errorf("Dialect = %s, want %s", lerr.Dialect, tt.dialect)
			}
			var msgs []string
			for _, is := range lerr.Issues {
				msgs = append(msgs, is.String())
			}
			joined := strings.Join(msgs, "\n")
			if !strings.Contains(joined, tt.want) {
				t.Errorf("issues:\n%s\nwant one containing %q", joined, tt.want)
			}
		})
	}
}

func TestReservedDialects(t *testing.T) {
	tests := []struct {
		name string
		d    host.Dialect
		want bool
	}{
		{"input", host.DialectGLSL, true},
		{"input", host.DialectHLSL, false},
		{"packoffset", host.DialectHLSL, true},
		{"packoffset", host.DialectGLSL, false},
		{"Technique", host.DialectHLSL, true},
		{"gl_Position", host.DialectGLSL, true},
		{"lit_color", host.DialectGLSL, false},
		{"lit_color", host.DialectHLSL, false},
		{"anything", 0, false},
	}
	for _, tt := range tests {
		if got := Reserved(tt.d, tt.name); got != tt.want {
			t.Errorf("Reserved(%s, %q) = %v, want %v", tt.d, tt.name, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := Check("int a = (1;\n}}", host.DialectGLSL)
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "lint glsl: ") || !strings.Contains(msg, "more)") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestGeneratedProgramsAreClean(t *testing.T) {
	gl := host.Defaults(host.APIOpenGL)
	glMSAA := gl
	glMSAA.MSAA = true
	glMSAA.SSAA = true
	glMSAA.GeometryShaders = false
	es := gl
	es.GLSLVersion = host.VersionES300
	es.Bitfield = false
	es.BindingLayout = false
	es.DepthClamp = false
	hosts := []host.Config{
		gl, glMSAA, es,
		host.Defaults(host.APIVulkan),
		host.Defaults(host.APID3D11),
	}

	for uid := range vertex.EnumerateUids() {
		for _, hc := range hosts {
			src, err := vertex.Generate(uid, hc)
			if err != nil {
				t.Fatalf("Generate(%s, %s) error = %v", uid, hc.API, err)
			}
			if err := Check(src, hc.Dialect()); err != nil {
				t.Errorf("%s on %s: %v", uid, hc.Profile(), err)
			}
		}
	}
}
