package debug

import (
	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// SingleOverride examines the environment a function was called with
// and returns the expression its result should be replaced by.
type SingleOverride interface {
	GetOverride(env sexp.SExp) (sexp.SExp, runtime.Failure)
}

// FunctionOverrides replaces targeted function applications while a
// program runs, supporting argument inspection and mocking. Functions
// are recognized by the tree hash of the applied program against the
// compiled symbol table.
type FunctionOverrides struct {
	symbols   map[string]string
	overrides map[string]SingleOverride
}

// NewFunctionOverrides pairs a compiled program's symbol table with a
// map from function names to override implementations.
func NewFunctionOverrides(symbols map[string]string, overrides map[string]SingleOverride) *FunctionOverrides {
	return &FunctionOverrides{symbols: symbols, overrides: overrides}
}

func (o *FunctionOverrides) ReplaceStep(step runtime.Step) (runtime.Step, runtime.Failure) {
	op, ok := step.(*runtime.OpStep)
	if !ok || op.Values != nil || !isOp(op.Op, sexp.OpApply) {
		return nil, nil
	}
	args, ok := op.Args.(*sexp.Pair)
	if !ok {
		return nil, nil
	}
	return o.overrideIfTargeted(op, args.First, args.Rest)
}

func (o *FunctionOverrides) overrideIfTargeted(op *runtime.OpStep, fun, args sexp.SExp) (runtime.Step, runtime.Failure) {
	name, ok := o.symbols[sexp.Sha256TreeHex(fun)]
	if !ok {
		return nil, nil
	}
	override, ok := o.overrides[name]
	if !ok {
		return nil, nil
	}
	value, fail := override.GetOverride(args)
	if fail != nil {
		return nil, fail
	}
	return &runtime.ResultStep{L: op.Op.Loc(), Value: value, Parent: op.Parent}, nil
}
