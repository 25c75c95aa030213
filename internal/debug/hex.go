package debug

import (
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// HexToProgram parses a serialized hex program and assigns locations
// from the symbol table: any subtree whose tree hash names a symbol
// is located at the start of that name, so step reports show function
// names instead of byte offsets.
func HexToProgram(hexProgram string, loc sexp.Srcloc, symbols map[string]string) (sexp.SExp, error) {
	parsed, err := sexp.DecodeHex(loc, hexProgram)
	if err != nil {
		return nil, err
	}
	return relocate(parsed, loc, symbols), nil
}

func relocate(s sexp.SExp, loc sexp.Srcloc, symbols map[string]string) sexp.SExp {
	if name, ok := symbols[sexp.Sha256TreeHex(s)]; ok {
		loc = sexp.Start(name)
	}
	switch v := s.(type) {
	case *sexp.Pair:
		return sexp.Cons(loc, relocate(v.First, loc, symbols), relocate(v.Rest, loc, symbols))
	case *sexp.Atom:
		return sexp.NewAtom(loc, v.Value)
	}
	return s
}
