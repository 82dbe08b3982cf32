// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lint

// TokenKind represents the type of a lexical token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral

	// TokenDirective is a whole preprocessor line.
	TokenDirective

	// Delimiters
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenSemicolon
	TokenColon
	TokenQuestion
	TokenDot

	// TokenOperator covers arithmetic, bitwise, logical, comparison and
	// assignment operators. The lexeme tells them apart.
	TokenOperator
)

var tokenNames = [...]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenIdent:        "Ident",
	TokenIntLiteral:   "IntLiteral",
	TokenFloatLiteral: "FloatLiteral",
	TokenDirective:    "Directive",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenComma:        ",",
	TokenSemicolon:    ";",
	TokenColon:        ":",
	TokenQuestion:     "?",
	TokenDot:          ".",
	TokenOperator:     "Operator",
}

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "Unknown"
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}
