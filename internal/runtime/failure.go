// Package runtime evaluates CLVM programs. Evaluation is expressed as
// a small-step machine so that callers such as the debugger can
// observe every transition; Runner drives the machine to completion
// for ordinary execution.
package runtime

import (
	"fmt"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// Failure is an evaluation failure carrying a source location. It is
// either an *Err (the machine rejected the program) or an *Exn (the
// program raised via the x operator).
type Failure interface {
	error
	FailLoc() sexp.Srcloc
}

// Err reports a malformed or unsupported program.
type Err struct {
	Loc sexp.Srcloc
	Msg string
}

func (e *Err) Error() string        { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }
func (e *Err) FailLoc() sexp.Srcloc { return e.Loc }

// Exn is a program-raised exception. Value holds the argument list
// given to x.
type Exn struct {
	Loc   sexp.Srcloc
	Value sexp.SExp
}

func (e *Exn) Error() string        { return fmt.Sprintf("%s: clvm raise %s", e.Loc, e.Value) }
func (e *Exn) FailLoc() sexp.Srcloc { return e.Loc }

func errf(loc sexp.Srcloc, format string, args ...interface{}) *Err {
	return &Err{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}
