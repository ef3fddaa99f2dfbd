package lang

import (
	"github.com/pkg/errors"
)

type tokenKind byte

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenNumber
	// tokenOp covers binary operators and the punctuation := ; ( ).
	tokenOp
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// lexer scans a source buffer into tokens. Positions are 1-based.
type lexer struct {
	src  []byte
	pos  int
	line int
	col  int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) nextByte() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// next returns the next token, skipping whitespace and "--" line comments.
func (l *lexer) next() (token, error) {
skip:
	for l.pos < len(l.src) {
		switch c := l.peekByte(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.nextByte()
		case c == '-' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '-':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.nextByte()
			}
		default:
			break skip
		}
	}
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, line: l.line, col: l.col}, nil
	}

	tok := token{line: l.line, col: l.col}
	c := l.peekByte()
	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.peekByte()) {
			l.nextByte()
		}
		tok.kind = tokenIdent
		tok.text = string(l.src[start:l.pos])
	case isDigit(c):
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.nextByte()
		}
		tok.kind = tokenNumber
		tok.text = string(l.src[start:l.pos])
	default:
		tok.kind = tokenOp
		tok.text = l.scanOperator()
		if tok.text == "" {
			return token{}, errors.Errorf("%d:%d: unexpected character %q", tok.line, tok.col, c)
		}
	}
	return tok, nil
}

// twoByteOperators are matched before their single-byte prefixes.
var twoByteOperators = []string{":=", "<=", ">=", "==", "!=", "&&", "!!"}

func (l *lexer) scanOperator() string {
	if l.pos+1 < len(l.src) {
		pair := string(l.src[l.pos : l.pos+2])
		for _, op := range twoByteOperators {
			if pair == op {
				l.nextByte()
				l.nextByte()
				return op
			}
		}
	}
	switch l.peekByte() {
	case '+', '-', '*', '/', '%', '<', '>', ';', '(', ')':
		return string(l.nextByte())
	}
	return ""
}
