// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lint

import (
	"unicode/utf8"
)

// Lexer tokenizes the C-family shader source shared by GLSL and HLSL.
// Comments are dropped and each preprocessor line becomes one token.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int
	// startLine and startColumn locate the token being scanned.
	startLine   int
	startColumn int
	tokens      []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	// Estimate ~1 token per 5 characters of source.
	estTokens := len(source) / 5
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize returns all tokens from the source, ending with TokenEOF.
// Malformed input produces TokenError tokens rather than stopping the scan.
func (l *Lexer) Tokenize() []Token {
	for !l.isAtEnd() {
		l.start = l.pos
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})
	return l.tokens
}

// twoCharOps and threeCharOps extend a one-character operator.
var (
	twoCharOps = map[string]struct{}{
		"++": {}, "--": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
		"==": {}, "!=": {}, "<=": {}, ">=": {}, "&&": {}, "||": {}, "^^": {},
		"<<": {}, ">>": {}, "&=": {}, "|=": {}, "^=": {},
	}
	threeCharOps = map[string]struct{}{"<<=": {}, ">>=": {}}
)

func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '[':
		l.addToken(TokenLeftBracket)
	case ']':
		l.addToken(TokenRightBracket)
	case ',':
		l.addToken(TokenComma)
	case ';':
		l.addToken(TokenSemicolon)
	case ':':
		l.addToken(TokenColon)
	case '?':
		l.addToken(TokenQuestion)
	case '#':
		l.directive()
	case '.':
		if isDigit(l.peek()) {
			l.number()
		} else {
			l.addToken(TokenDot)
		}
	case '/':
		switch {
		case l.match('/'):
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		case l.match('*'):
			l.blockComment()
		default:
			l.operator()
		}

	case '+', '-', '*', '%', '=', '!', '<', '>', '&', '|', '^', '~':
		l.operator()

	case ' ', '\r', '\t', '\v', '\f':
	case '\n':
		l.newline()

	default:
		switch {
		case isDigit(r):
			l.number()
		case isAlpha(r) || r == '_':
			l.identifier()
		default:
			l.addToken(TokenError)
		}
	}
}

func (l *Lexer) operator() {
	if l.pos+1 < len(l.source) {
		if _, ok := threeCharOps[l.source[l.start:l.pos+2]]; ok {
			l.advance()
			l.advance()
			l.addToken(TokenOperator)
			return
		}
	}
	if l.pos < len(l.source) {
		if _, ok := twoCharOps[l.source[l.start:l.pos+1]]; ok {
			l.advance()
		}
	}
	l.addToken(TokenOperator)
}

// directive consumes a preprocessor line, following backslash line
// continuations.
func (l *Lexer) directive() {
	for !l.isAtEnd() {
		if l.peek() == '\\' && l.peekNext() == '\n' {
			l.advance()
			l.advance()
			l.newline()
			continue
		}
		if l.peek() == '\n' {
			break
		}
		l.advance()
	}
	l.addToken(TokenDirective)
}

// blockComment skips a comment. Block comments do not nest. An
// unterminated comment is reported as an error token.
func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.advance() == '\n' {
			l.newline()
		}
	}
	l.tokens = append(l.tokens, Token{
		Kind:   TokenError,
		Lexeme: "/*",
		Line:   l.startLine,
		Column: l.startColumn,
	})
}

func (l *Lexer) number() {
	if l.source[l.start] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == 'u' || l.peek() == 'U' {
			l.advance()
		}
		l.addToken(TokenIntLiteral)
		return
	}

	float := l.source[l.start] == '.'
	for isDigit(l.peek()) {
		l.advance()
	}
	if !float && l.peek() == '.' {
		float = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		float = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	switch l.peek() {
	case 'f', 'F', 'h', 'H':
		float = true
		l.advance()
	case 'u', 'U':
		if !float {
			l.advance()
		}
	}

	// A literal running straight into an identifier, as in 1x, is malformed.
	if next := l.peek(); isAlpha(next) || next == '_' {
		for isAlphaNumeric(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.addToken(TokenError)
		return
	}

	if float {
		l.addToken(TokenFloatLiteral)
	} else {
		l.addToken(TokenIntLiteral)
	}
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	l.addToken(TokenIdent)
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Line:   l.startLine,
		Column: l.startColumn,
	})
}

func (l *Lexer) newline() {
	l.line++
	l.column = 1
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isAlpha accepts ASCII letters only; neither dialect allows other
// identifier characters.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
