// Package sexp implements the CLVM s-expression core: atoms and pairs
// with source locations, the signed and unsigned atom number codecs,
// parsing, printing, tree hashing, and the CLVM wire format.
package sexp

import (
	"bytes"
	"math/big"
)

// SExp is a CLVM value: either an *Atom or a *Pair.
type SExp interface {
	Loc() Srcloc
	Nullp() bool
	String() string
}

// Atom is a byte-string leaf. A zero-length atom is nil.
type Atom struct {
	L     Srcloc
	Value []byte
}

// Pair is a cons cell.
type Pair struct {
	L     Srcloc
	First SExp
	Rest  SExp
}

// Nil returns the empty atom at the given location.
func Nil(l Srcloc) *Atom {
	return &Atom{L: l}
}

// NewAtom returns an atom holding the given bytes.
func NewAtom(l Srcloc, value []byte) *Atom {
	return &Atom{L: l, Value: value}
}

// IntAtom returns an atom holding the minimal signed encoding of v.
func IntAtom(l Srcloc, v *big.Int) *Atom {
	return &Atom{L: l, Value: EncodeInt(v)}
}

// Cons returns the pair (first . rest).
func Cons(l Srcloc, first, rest SExp) *Pair {
	return &Pair{L: l, First: first, Rest: rest}
}

func (a *Atom) Loc() Srcloc { return a.L }
func (p *Pair) Loc() Srcloc { return p.L }

func (a *Atom) Nullp() bool { return len(a.Value) == 0 }
func (p *Pair) Nullp() bool { return false }

// Number returns the signed integer value of the atom.
func (a *Atom) Number() *big.Int {
	return DecodeInt(a.Value)
}

// Equal compares two s-expressions structurally. Locations are ignored.
func Equal(a, b SExp) bool {
	switch av := a.(type) {
	case *Atom:
		bv, ok := b.(*Atom)
		return ok && bytes.Equal(av.Value, bv.Value)
	case *Pair:
		bv, ok := b.(*Pair)
		return ok && Equal(av.First, bv.First) && Equal(av.Rest, bv.Rest)
	}
	return false
}

// ProperList returns the elements of a nil-terminated list, or nil
// and false if the expression is dotted or a non-nil atom.
func ProperList(s SExp) ([]SExp, bool) {
	elems := []SExp{}
	for {
		switch v := s.(type) {
		case *Atom:
			if v.Nullp() {
				return elems, true
			}
			return nil, false
		case *Pair:
			elems = append(elems, v.First)
			s = v.Rest
		}
	}
}

// List builds a nil-terminated list from the given elements.
func List(l Srcloc, elems ...SExp) SExp {
	result := SExp(Nil(l))
	for i := len(elems) - 1; i >= 0; i-- {
		result = Cons(l, elems[i], result)
	}
	return result
}
