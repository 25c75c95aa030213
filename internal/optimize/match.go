package optimize

import (
	"bytes"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

const (
	atomMatch = "$"
	sexpMatch = ":"
)

// Match unifies sexp against pattern and returns the bindings, or nil
// for no match. Pattern atoms match themselves; ($ . name) matches
// any atom and (: . name) any form, binding name; a name bound twice
// must bind equal forms. ($ . $) and (: . :) match the literal
// marker atoms.
func Match(pattern, s sexp.SExp) map[string]sexp.SExp {
	return matchWith(pattern, s, map[string]sexp.SExp{})
}

func matchWith(pattern, s sexp.SExp, bindings map[string]sexp.SExp) map[string]sexp.SExp {
	switch p := pattern.(type) {
	case *sexp.Atom:
		a, ok := s.(*sexp.Atom)
		if !ok || !bytes.Equal(p.Value, a.Value) {
			return nil
		}
		return bindings

	case *sexp.Pair:
		if op, name, ok := captureSpec(p); ok {
			if name == op {
				// literal marker escape
				a, isAtom := s.(*sexp.Atom)
				if isAtom && string(a.Value) == op {
					return bindings
				}
				return nil
			}
			if op == atomMatch {
				if _, isAtom := s.(*sexp.Atom); !isAtom {
					return nil
				}
			}
			return unify(bindings, name, s)
		}

		sp, ok := s.(*sexp.Pair)
		if !ok {
			return nil
		}
		bindings = matchWith(p.First, sp.First, bindings)
		if bindings == nil {
			return nil
		}
		return matchWith(p.Rest, sp.Rest, bindings)
	}
	return nil
}

// captureSpec recognizes ($ . name) and (: . name) pattern pairs.
func captureSpec(p *sexp.Pair) (op, name string, ok bool) {
	left, okLeft := p.First.(*sexp.Atom)
	right, okRight := p.Rest.(*sexp.Atom)
	if !okLeft || !okRight {
		return "", "", false
	}
	opName := string(left.Value)
	if opName != atomMatch && opName != sexpMatch {
		return "", "", false
	}
	return opName, string(right.Value), true
}

func unify(bindings map[string]sexp.SExp, name string, s sexp.SExp) map[string]sexp.SExp {
	if bound, ok := bindings[name]; ok {
		if !sexp.Equal(bound, s) {
			return nil
		}
		return bindings
	}
	bindings[name] = s
	return bindings
}
