package sexp

import "fmt"

// Srcloc identifies a span of source text. Until is nil for a point
// location.
type Srcloc struct {
	File  string
	Line  int
	Col   int
	Until *Srcloc
}

// Start returns a location at the beginning of the named file.
func Start(file string) Srcloc {
	return Srcloc{File: file, Line: 1, Col: 1}
}

// Extend returns a copy of l spanning up to the given end location.
func (l Srcloc) Extend(end Srcloc) Srcloc {
	l.Until = &Srcloc{File: end.File, Line: end.Line, Col: end.Col}
	return l
}

func (l Srcloc) String() string {
	if l.Until != nil {
		return fmt.Sprintf("%s(%d):%d-(%d):%d", l.File, l.Line, l.Col, l.Until.Line, l.Until.Col)
	}
	return fmt.Sprintf("%s(%d):%d", l.File, l.Line, l.Col)
}
