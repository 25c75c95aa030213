package sexp

import (
	"encoding/hex"
	"fmt"
)

// Encode serializes an expression to the CLVM wire format.
func Encode(s SExp) []byte {
	return appendEncoded(nil, s)
}

// EncodeHex serializes an expression to lowercase hex.
func EncodeHex(s SExp) string {
	return hex.EncodeToString(Encode(s))
}

func appendEncoded(out []byte, s SExp) []byte {
	switch v := s.(type) {
	case *Pair:
		out = append(out, 0xff)
		out = appendEncoded(out, v.First)
		return appendEncoded(out, v.Rest)
	case *Atom:
		b := v.Value
		n := len(b)
		switch {
		case n == 0:
			return append(out, 0x80)
		case n == 1 && b[0] <= 0x7f:
			return append(out, b[0])
		case n < 0x40:
			out = append(out, 0x80|byte(n))
		case n < 0x2000:
			out = append(out, 0xc0|byte(n>>8), byte(n))
		case n < 0x100000:
			out = append(out, 0xe0|byte(n>>16), byte(n>>8), byte(n))
		case n < 0x8000000:
			out = append(out, 0xf0|byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		default:
			out = append(out, 0xf8|byte(n>>32), byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		}
		return append(out, b...)
	}
	return out
}

// Decode reads exactly one serialized expression. All produced nodes
// carry the given location.
func Decode(loc Srcloc, b []byte) (SExp, error) {
	d := &decoder{loc: loc, data: b}
	s, err := d.decode()
	if err != nil {
		return nil, err
	}
	if d.pos != len(b) {
		return nil, fmt.Errorf("%d trailing bytes after serialized form", len(b)-d.pos)
	}
	return s, nil
}

// DecodeHex reads exactly one serialized expression from hex text.
func DecodeHex(loc Srcloc, s string) (SExp, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return Decode(loc, b)
}

type decoder struct {
	loc  Srcloc
	data []byte
	pos  int
}

func (d *decoder) next() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, fmt.Errorf("truncated serialized form")
	}
	c := d.data[d.pos]
	d.pos++
	return c, nil
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, fmt.Errorf("truncated serialized form")
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) decode() (SExp, error) {
	c, err := d.next()
	if err != nil {
		return nil, err
	}
	if c == 0xff {
		first, err := d.decode()
		if err != nil {
			return nil, err
		}
		rest, err := d.decode()
		if err != nil {
			return nil, err
		}
		return Cons(d.loc, first, rest), nil
	}
	if c&0x80 == 0 {
		return NewAtom(d.loc, []byte{c}), nil
	}
	if c == 0x80 {
		return Nil(d.loc), nil
	}

	var size, extra int
	switch {
	case c&0xc0 == 0x80:
		size, extra = int(c&0x3f), 0
	case c&0xe0 == 0xc0:
		size, extra = int(c&0x1f), 1
	case c&0xf0 == 0xe0:
		size, extra = int(c&0x0f), 2
	case c&0xf8 == 0xf0:
		size, extra = int(c&0x07), 3
	case c&0xfc == 0xf8:
		size, extra = int(c&0x03), 4
	default:
		return nil, fmt.Errorf("invalid serialization prefix 0x%02x", c)
	}
	for i := 0; i < extra; i++ {
		b, err := d.next()
		if err != nil {
			return nil, err
		}
		size = size<<8 | int(b)
	}
	value, err := d.take(size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, value)
	return NewAtom(d.loc, out), nil
}
