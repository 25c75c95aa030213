// Package dialect detects which chialisp dialect a program speaks
// from the include sigils in its body.
package dialect

import (
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// Accepted describes how the language is spoken. Stepping is zero
// when no dialect sigil was found.
type Accepted struct {
	Stepping int
}

// Description packages the content inserted for a dialect include
// plus its compilation flags.
type Description struct {
	Accepted Accepted
	Content  string
}

// KnownDialects maps include sigils to their dialect descriptions.
var KnownDialects = map[string]Description{
	"*standard-cl-21*": {
		Accepted: Accepted{Stepping: 21},
		Content:  "(\n(defconstant *chialisp-version* 21)\n)",
	},
	"*standard-cl-22*": {
		Accepted: Accepted{Stepping: 22},
		Content:  "(\n(defconstant *chialisp-version* 22)\n)",
	},
}

// includeDialect recognizes a two-element (include <sigil>) form.
func includeDialect(elems []sexp.SExp) (Accepted, bool) {
	keyword, ok := elems[0].(*sexp.Atom)
	if !ok {
		return Accepted{}, false
	}
	name, ok := elems[1].(*sexp.Atom)
	if !ok {
		return Accepted{}, false
	}
	if string(keyword.Value) != "include" {
		return Accepted{}, false
	}
	desc, ok := KnownDialects[string(name.Value)]
	if !ok {
		return Accepted{}, false
	}
	return desc.Accepted, true
}

// DetectModern scans a program for a dialect include and returns the
// first accepted dialect found, searching nested forms first.
func DetectModern(s sexp.SExp) Accepted {
	var result Accepted

	elems, ok := sexp.ProperList(s)
	if !ok {
		return result
	}

	for _, elt := range elems {
		if nested := DetectModern(elt); nested.Stepping != 0 {
			return nested
		}

		inner, ok := sexp.ProperList(elt)
		if !ok || len(inner) != 2 {
			continue
		}
		if accepted, ok := includeDialect(inner); ok {
			result = accepted
			break
		}
	}

	return result
}
