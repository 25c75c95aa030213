package runtime

import (
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// Step is one state of the evaluation machine. The concrete states
// are *EvalStep, *OpStep, *ResultStep and *DoneStep. Parents form the
// continuation: results are delivered to the nearest enclosing OpStep.
type Step interface {
	isStep()
}

// EvalStep is about to evaluate Expr against Env.
type EvalStep struct {
	Expr   sexp.SExp
	Env    sexp.SExp
	Parent Step
}

// OpStep is an operator application in progress. Values is nil until
// argument evaluation begins, which is the state the debugger reports
// as operator entry. Remaining holds the arguments not yet evaluated.
type OpStep struct {
	Op        sexp.SExp
	Env       sexp.SExp
	Args      sexp.SExp
	Values    []sexp.SExp
	Remaining sexp.SExp
	Parent    Step
}

// ResultStep carries a value produced by an operator on its way to
// the parent step.
type ResultStep struct {
	L      sexp.Srcloc
	Value  sexp.SExp
	Parent Step
}

// DoneStep is the terminal state.
type DoneStep struct {
	L     sexp.Srcloc
	Value sexp.SExp
}

func (*EvalStep) isStep()   {}
func (*OpStep) isStep()     {}
func (*ResultStep) isStep() {}
func (*DoneStep) isStep()   {}

// Start returns the initial machine state for running prog with env.
func Start(prog, env sexp.SExp) Step {
	return &EvalStep{Expr: prog, Env: env}
}

// Next advances the machine by one transition.
func Next(s Step) (Step, Failure) {
	switch v := s.(type) {
	case *DoneStep:
		return v, nil
	case *EvalStep:
		return nextEval(v)
	case *OpStep:
		return nextOp(v)
	case *ResultStep:
		return deliver(v)
	}
	return nil, errf(sexp.Srcloc{}, "internal error: unknown step")
}

func nextEval(s *EvalStep) (Step, Failure) {
	switch expr := s.Expr.(type) {
	case *sexp.Atom:
		value, fail := EnvLookup(s.Env, expr)
		if fail != nil {
			return nil, fail
		}
		return &ResultStep{L: expr.L, Value: value, Parent: s.Parent}, nil

	case *sexp.Pair:
		switch op := expr.First.(type) {
		case *sexp.Atom:
			if len(op.Value) == 1 && op.Value[0] == sexp.OpQuote {
				return &ResultStep{L: expr.L, Value: expr.Rest, Parent: s.Parent}, nil
			}
			return &OpStep{
				Op:        op,
				Env:       s.Env,
				Args:      expr.Rest,
				Remaining: expr.Rest,
				Parent:    s.Parent,
			}, nil

		case *sexp.Pair:
			// ((X) . args) applies X to the unevaluated arguments.
			inner, ok := op.First.(*sexp.Atom)
			if !ok || !op.Rest.Nullp() {
				return nil, errf(expr.L, "%s in operator position", op)
			}
			values, ok := sexp.ProperList(expr.Rest)
			if !ok {
				return nil, errf(expr.L, "bad argument list %s", expr.Rest)
			}
			return &OpStep{
				Op:        inner,
				Env:       s.Env,
				Args:      expr.Rest,
				Values:    append([]sexp.SExp{}, values...),
				Remaining: sexp.Nil(expr.L),
				Parent:    s.Parent,
			}, nil
		}
	}
	return nil, errf(s.Expr.Loc(), "internal error: unevaluable form")
}

func nextOp(s *OpStep) (Step, Failure) {
	values := s.Values
	if values == nil {
		values = []sexp.SExp{}
	}

	switch rem := s.Remaining.(type) {
	case *sexp.Pair:
		return &EvalStep{
			Expr: rem.First,
			Env:  s.Env,
			Parent: &OpStep{
				Op:        s.Op,
				Env:       s.Env,
				Args:      s.Args,
				Values:    values,
				Remaining: rem.Rest,
				Parent:    s.Parent,
			},
		}, nil
	case *sexp.Atom:
		if !rem.Nullp() {
			return nil, errf(s.Args.Loc(), "bad argument list %s", s.Args)
		}
	}

	return apply(s, values)
}

func apply(s *OpStep, values []sexp.SExp) (Step, Failure) {
	op, ok := s.Op.(*sexp.Atom)
	if !ok || len(op.Value) != 1 {
		return nil, errf(s.Op.Loc(), "unknown operator %s", s.Op)
	}

	switch op.Value[0] {
	case sexp.OpApply:
		if len(values) != 2 {
			return nil, errf(op.L, "apply requires 2 arguments, got %d", len(values))
		}
		return &EvalStep{Expr: values[0], Env: values[1], Parent: s.Parent}, nil
	case sexp.OpRaise:
		return nil, &Exn{Loc: op.L, Value: sexp.List(op.L, values...)}
	}

	value, fail := ApplyOp(op, values)
	if fail != nil {
		return nil, fail
	}
	return &ResultStep{L: s.Args.Loc(), Value: value, Parent: s.Parent}, nil
}

func deliver(s *ResultStep) (Step, Failure) {
	switch parent := s.Parent.(type) {
	case nil:
		return &DoneStep{L: s.L, Value: s.Value}, nil
	case *OpStep:
		values := append(append([]sexp.SExp{}, parent.Values...), s.Value)
		return &OpStep{
			Op:        parent.Op,
			Env:       parent.Env,
			Args:      parent.Args,
			Values:    values,
			Remaining: parent.Remaining,
			Parent:    parent.Parent,
		}, nil
	}
	return nil, errf(s.L, "internal error: result delivered to non-operator")
}

// EnvLookup resolves an environment path atom. Paths are unsigned:
// 0 is nil, 1 the whole environment, and each further bit selects
// first (0) or rest (1) from least significant upward.
func EnvLookup(env sexp.SExp, path *sexp.Atom) (sexp.SExp, Failure) {
	n := sexp.DecodePath(path.Value)
	if n.Sign() == 0 {
		return sexp.Nil(path.L), nil
	}
	for n.BitLen() > 1 {
		p, ok := env.(*sexp.Pair)
		if !ok {
			return nil, errf(path.L, "path into atom %s", env)
		}
		if n.Bit(0) == 1 {
			env = p.Rest
		} else {
			env = p.First
		}
		n.Rsh(n, 1)
	}
	return env, nil
}
