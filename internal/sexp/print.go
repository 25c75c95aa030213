package sexp

import (
	"bytes"
	"encoding/hex"
	"strings"
)

func (a *Atom) String() string { return atomRepr(a.Value, false) }
func (p *Pair) String() string { return repr(p, false) }

// repr renders an expression the way the classic disassembler does:
// operator keywords in first position, minimally-encoded small atoms
// as integers, printable atoms longer than two bytes as quoted
// strings, everything else as hex.
func repr(s SExp, allowKeyword bool) string {
	switch v := s.(type) {
	case *Atom:
		return atomRepr(v.Value, allowKeyword)
	case *Pair:
		var sb strings.Builder
		sb.WriteByte('(')
		sb.WriteString(repr(v.First, true))
		rest := v.Rest
	walk:
		for {
			switch r := rest.(type) {
			case *Pair:
				sb.WriteByte(' ')
				sb.WriteString(repr(r.First, false))
				rest = r.Rest
			case *Atom:
				if !r.Nullp() {
					sb.WriteString(" . ")
					sb.WriteString(atomRepr(r.Value, false))
				}
				break walk
			}
		}
		sb.WriteByte(')')
		return sb.String()
	}
	return ""
}

func atomRepr(b []byte, allowKeyword bool) string {
	if len(b) == 0 {
		return "()"
	}
	if allowKeyword {
		if name, ok := KeywordName(b); ok {
			return name
		}
	}
	if len(b) > 2 {
		if s, ok := quotedString(b); ok {
			return s
		}
		return "0x" + hex.EncodeToString(b)
	}
	v := DecodeInt(b)
	if bytes.Equal(EncodeInt(v), b) {
		return v.String()
	}
	return "0x" + hex.EncodeToString(b)
}

func quotedString(b []byte) (string, bool) {
	hasDouble, hasSingle := false, false
	for _, c := range b {
		if c < 32 || c > 126 {
			return "", false
		}
		switch c {
		case '"':
			hasDouble = true
		case '\'':
			hasSingle = true
		}
	}
	switch {
	case !hasDouble:
		return `"` + string(b) + `"`, true
	case !hasSingle:
		return "'" + string(b) + "'", true
	}
	return "", false
}
