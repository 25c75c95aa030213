package sexp

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// ParseError reports a syntax error with its source location.
type ParseError struct {
	Loc Srcloc
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

type parser struct {
	file string
	src  string
	pos  int
	line int
	col  int
}

// Parse reads a single s-expression from src. Operator keywords
// assemble to their opcode atoms; unknown symbols become their UTF-8
// bytes.
func Parse(file, src string) (SExp, error) {
	p := &parser{file: file, src: src, line: 1, col: 1}
	p.skipSpace()
	result, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, &ParseError{Loc: p.loc(), Msg: "unexpected trailing input"}
	}
	return result, nil
}

func (p *parser) loc() Srcloc {
	return Srcloc{File: p.file, Line: p.line, Col: p.col}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) advance() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) skipSpace() {
	for {
		c, ok := p.peek()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.advance()
		case c == ';':
			for {
				c, ok := p.peek()
				if !ok || c == '\n' {
					break
				}
				p.advance()
			}
		default:
			return
		}
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', ';':
		return true
	}
	return false
}

func (p *parser) parseExpr() (SExp, error) {
	start := p.loc()
	c, ok := p.peek()
	if !ok {
		return nil, &ParseError{Loc: start, Msg: "unexpected end of input"}
	}
	switch c {
	case '(':
		p.advance()
		return p.parseList(start)
	case ')':
		return nil, &ParseError{Loc: start, Msg: "unexpected )"}
	case '"', '\'':
		return p.parseString(start)
	}
	return p.parseToken(start)
}

func (p *parser) parseList(open Srcloc) (SExp, error) {
	p.skipSpace()
	c, ok := p.peek()
	if !ok {
		return nil, &ParseError{Loc: p.loc(), Msg: "missing )"}
	}
	if c == ')' {
		p.advance()
		return Nil(open.Extend(p.loc())), nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.dotAhead() {
		p.advance()
		p.skipSpace()
		tail, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		c, ok := p.peek()
		if !ok || c != ')' {
			return nil, &ParseError{Loc: p.loc(), Msg: "expected ) after dotted tail"}
		}
		p.advance()
		return Cons(open.Extend(p.loc()), first, tail), nil
	}

	rest, err := p.parseList(open)
	if err != nil {
		return nil, err
	}
	return Cons(open, first, rest), nil
}

// dotAhead reports a "." token, as opposed to a symbol starting with a
// dot.
func (p *parser) dotAhead() bool {
	c, ok := p.peek()
	if !ok || c != '.' {
		return false
	}
	if p.pos+1 >= len(p.src) {
		return true
	}
	return isDelimiter(p.src[p.pos+1])
}

func (p *parser) parseString(start Srcloc) (SExp, error) {
	quote := p.advance()
	var sb strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return nil, &ParseError{Loc: start, Msg: "unterminated string"}
		}
		p.advance()
		if c == quote {
			return NewAtom(start.Extend(p.loc()), []byte(sb.String())), nil
		}
		sb.WriteByte(c)
	}
}

func (p *parser) parseToken(start Srcloc) (SExp, error) {
	tokStart := p.pos
	for {
		c, ok := p.peek()
		if !ok || isDelimiter(c) || c == '"' || c == '\'' {
			break
		}
		p.advance()
	}
	tok := p.src[tokStart:p.pos]
	if tok == "" {
		return nil, &ParseError{Loc: start, Msg: "empty token"}
	}
	loc := start.Extend(p.loc())

	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		digits := tok[2:]
		if len(digits)%2 == 1 {
			digits = "0" + digits
		}
		value, err := hex.DecodeString(digits)
		if err != nil {
			return nil, &ParseError{Loc: start, Msg: "invalid hex atom " + tok}
		}
		return NewAtom(loc, value), nil
	}

	if isInteger(tok) {
		v, ok := new(big.Int).SetString(tok, 10)
		if !ok {
			return nil, &ParseError{Loc: start, Msg: "invalid integer " + tok}
		}
		return IntAtom(loc, v), nil
	}

	if strings.HasPrefix(tok, "#") {
		code, ok := KeywordCode(tok[1:])
		if !ok {
			return nil, &ParseError{Loc: start, Msg: "unknown operator " + tok}
		}
		return NewAtom(loc, []byte{code}), nil
	}

	if code, ok := KeywordCode(tok); ok {
		return NewAtom(loc, []byte{code}), nil
	}

	return NewAtom(loc, []byte(tok)), nil
}

func isInteger(tok string) bool {
	i := 0
	if tok[0] == '-' || tok[0] == '+' {
		if len(tok) == 1 {
			return false
		}
		i = 1
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}
