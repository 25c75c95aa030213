// Package optimize rewrites compiled CLVM so that (a R args) equals
// (a R_opt args) for any args. It applies a fixed set of pattern-based
// rewrites to a fixed point.
package optimize

import (
	"context"
	"fmt"
	"math/big"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// Evaluator runs a CLVM program, used for folding constant subtrees.
type Evaluator interface {
	Run(ctx context.Context, prog, env sexp.SExp) (sexp.SExp, error)
}

func mustPattern(src string) sexp.SExp {
	p, err := sexp.Parse("*pattern*", src)
	if err != nil {
		panic(fmt.Sprintf("bad built-in pattern %q: %v", src, err))
	}
	return p
}

var (
	consQAPattern    = mustPattern("(a (q . (: . sexp)) (: . args))")
	varChangePattern = mustPattern("(a (q . (: . sexp)) (: . args))")
	consPattern      = mustPattern("(c (: . first) (: . rest))")
	consFirstPattern = mustPattern("(f (c (: . first) (: . rest)))")
	consRestPattern  = mustPattern("(r (c (: . first) (: . rest)))")
	firstAtomPattern = mustPattern("(f ($ . atom))")
	restAtomPattern  = mustPattern("(r ($ . atom))")
	quoteNullPattern = mustPattern("(q . 0)")
	applyNullPattern = mustPattern("(a 0 . (: . rest))")
)

type optimizerFunc func(ctx context.Context, r sexp.SExp, ev Evaluator) (sexp.SExp, error)

type optimizerRunner struct {
	name string
	run  optimizerFunc
}

var optimizers []optimizerRunner

func init() {
	optimizers = []optimizerRunner{
		{"cons_optimizer", consOptimizer},
		{"constant_optimizer", constantOptimizer},
		{"cons_q_a_optimizer", consQAOptimizer},
		{"var_change_optimizer_cons_eval", varChangeOptimizerConsEval},
		{"children_optimizer", childrenOptimizer},
		{"path_optimizer", pathOptimizer},
		{"quote_null_optimizer", quoteNullOptimizer},
		{"apply_null_optimizer", applyNullOptimizer},
	}
}

// Optimize rewrites r to a fixed point of all optimizers.
func Optimize(ctx context.Context, r sexp.SExp, ev Evaluator) (sexp.SExp, error) {
	if _, ok := r.(*sexp.Atom); ok {
		return r, nil
	}

	for {
		if _, ok := sexp.ProperList(r); !ok {
			return r, nil
		}
		start := r
		for _, opt := range optimizers {
			res, err := opt.run(ctx, r, ev)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opt.name, err)
			}
			if !sexp.Equal(r, res) {
				r = res
				break
			}
		}
		if sexp.Equal(start, r) {
			return r, nil
		}
	}
}

// seemsConstant reports that an expression cannot depend on the
// environment: quoted forms are constant, raises and bare paths are
// not, applications are constant when all their operands are.
func seemsConstant(s sexp.SExp) bool {
	switch v := s.(type) {
	case *sexp.Atom:
		return v.Nullp()
	case *sexp.Pair:
		switch op := v.First.(type) {
		case *sexp.Atom:
			if len(op.Value) == 1 && op.Value[0] == sexp.OpQuote {
				return true
			}
			if len(op.Value) == 1 && op.Value[0] == sexp.OpRaise {
				return false
			}
		case *sexp.Pair:
			if !seemsConstant(op) {
				return false
			}
		}
		return seemsConstantTail(v.Rest)
	}
	return false
}

func seemsConstantTail(s sexp.SExp) bool {
	for {
		switch v := s.(type) {
		case *sexp.Atom:
			return v.Nullp()
		case *sexp.Pair:
			if !seemsConstant(v.First) {
				return false
			}
			s = v.Rest
		}
	}
}

func quote(s sexp.SExp) sexp.SExp {
	loc := s.Loc()
	return sexp.Cons(loc, sexp.NewAtom(loc, []byte{sexp.OpQuote}), s)
}

// constantOptimizer evaluates expressions that do not depend on the
// environment and replaces them with their quoted result.
func constantOptimizer(ctx context.Context, r sexp.SExp, ev Evaluator) (sexp.SExp, error) {
	if !seemsConstant(r) || r.Nullp() {
		return r, nil
	}
	res, err := ev.Run(ctx, r, sexp.Nil(r.Loc()))
	if err != nil {
		return nil, err
	}
	return quote(res), nil
}

func isArgsCall(s sexp.SExp) bool {
	a, ok := s.(*sexp.Atom)
	return ok && len(a.Value) == 1 && a.Value[0] == 1
}

// consQAOptimizer applies (a (q . SEXP) @) => SEXP.
func consQAOptimizer(_ context.Context, r sexp.SExp, _ Evaluator) (sexp.SExp, error) {
	t := Match(consQAPattern, r)
	if t == nil {
		return r, nil
	}
	args, okArgs := t["args"]
	inner, okSexp := t["sexp"]
	if okArgs && okSexp && isArgsCall(args) {
		return inner, nil
	}
	return r, nil
}

func consF(args sexp.SExp) sexp.SExp {
	if t := Match(consPattern, args); t != nil {
		if first, ok := t["first"]; ok {
			return first
		}
	}
	loc := args.Loc()
	return sexp.List(loc, sexp.NewAtom(loc, []byte{sexp.OpFirst}), args)
}

func consR(args sexp.SExp) sexp.SExp {
	if t := Match(consPattern, args); t != nil {
		if rest, ok := t["rest"]; ok {
			return rest
		}
	}
	loc := args.Loc()
	return sexp.List(loc, sexp.NewAtom(loc, []byte{sexp.OpRest}), args)
}

// pathFromArgs rewrites a path atom into first/rest selections on the
// substituted argument expression.
func pathFromArgs(s sexp.SExp, newArgs sexp.SExp) sexp.SExp {
	atom, ok := s.(*sexp.Atom)
	if !ok {
		return newArgs
	}
	v := sexp.DecodePath(atom.Value)
	if v.BitLen() <= 1 {
		return newArgs
	}
	odd := v.Bit(0) == 1
	next := sexp.NewAtom(atom.L, sexp.EncodePath(new(big.Int).Rsh(v, 1)))
	if odd {
		return pathFromArgs(next, consR(newArgs))
	}
	return pathFromArgs(next, consF(newArgs))
}

// subArgs substitutes newArgs for the environment through an
// expression: path atoms become first/rest selections on newArgs.
func subArgs(s sexp.SExp, newArgs sexp.SExp) sexp.SExp {
	p, ok := s.(*sexp.Pair)
	if !ok {
		return pathFromArgs(s, newArgs)
	}
	first := p.First
	if _, ok := first.(*sexp.Pair); ok {
		first = subArgs(first, newArgs)
	}
	if elems, ok := sexp.ProperList(first); ok {
		return sexp.List(first.Loc(), elems...)
	}
	return pathFromArgs(s, newArgs)
}

// varChangeOptimizerConsEval pushes (a (q . S) ARGS) through a change
// of variables and keeps the result only when it folds to constants.
func varChangeOptimizerConsEval(ctx context.Context, r sexp.SExp, ev Evaluator) (sexp.SExp, error) {
	t := Match(varChangePattern, r)
	if t == nil {
		return r, nil
	}

	originalArgs, ok := t["args"]
	if !ok {
		originalArgs = sexp.Nil(r.Loc())
	}
	originalCall, ok := t["sexp"]
	if !ok {
		originalCall = sexp.Nil(r.Loc())
	}

	substituted := subArgs(originalCall, originalArgs)

	// Do not iterate into a quoted value as if it were a list.
	if seemsConstant(substituted) {
		return Optimize(ctx, substituted, ev)
	}

	operands, ok := sexp.ProperList(substituted)
	if !ok {
		return r, nil
	}

	optOperands := make([]sexp.SExp, len(operands))
	for i, o := range operands {
		opt, err := Optimize(ctx, o, ev)
		if err != nil {
			return nil, err
		}
		optOperands[i] = opt
	}

	nonConstant := 0
	for _, val := range optOperands {
		p, ok := val.(*sexp.Pair)
		if !ok {
			continue
		}
		switch f := p.First.(type) {
		case *sexp.Atom:
			if !(len(f.Value) == 1 && f.Value[0] == sexp.OpQuote) {
				nonConstant++
			}
		case *sexp.Pair:
			if _, proper := sexp.ProperList(val); proper {
				nonConstant++
			}
		}
	}

	if nonConstant < 1 {
		return sexp.List(r.Loc(), optOperands...), nil
	}
	return r, nil
}

// childrenOptimizer recursively optimizes all non-quoted child nodes.
func childrenOptimizer(ctx context.Context, r sexp.SExp, ev Evaluator) (sexp.SExp, error) {
	list, ok := sexp.ProperList(r)
	if !ok || len(list) == 0 {
		return r, nil
	}
	if op, ok := list[0].(*sexp.Atom); ok && len(op.Value) == 1 && op.Value[0] == sexp.OpQuote {
		return r, nil
	}
	optimized := make([]sexp.SExp, len(list))
	for i, v := range list {
		opt, err := Optimize(ctx, v, ev)
		if err != nil {
			return nil, err
		}
		optimized[i] = opt
	}
	return sexp.List(r.Loc(), optimized...), nil
}

// consOptimizer applies (f (c A B)) => A and (r (c A B)) => B.
func consOptimizer(_ context.Context, r sexp.SExp, _ Evaluator) (sexp.SExp, error) {
	if t := Match(consFirstPattern, r); t != nil {
		if first, ok := t["first"]; ok {
			return first, nil
		}
	}
	if t := Match(consRestPattern, r); t != nil {
		if rest, ok := t["rest"]; ok {
			return rest, nil
		}
	}
	return r, nil
}

// pathOptimizer collapses (f N) and (r N) over a path atom N into a
// single composed path.
func pathOptimizer(_ context.Context, r sexp.SExp, _ Evaluator) (sexp.SExp, error) {
	if t := Match(firstAtomPattern, r); t != nil {
		if atom, ok := t["atom"].(*sexp.Atom); ok {
			node := NewNodePath(sexp.DecodePath(atom.Value)).Add(NewNodePath(nil).First())
			return sexp.NewAtom(r.Loc(), node.AsPath()), nil
		}
	}
	if t := Match(restAtomPattern, r); t != nil {
		if atom, ok := t["atom"].(*sexp.Atom); ok {
			node := NewNodePath(sexp.DecodePath(atom.Value)).Add(NewNodePath(nil).Rest())
			return sexp.NewAtom(r.Loc(), node.AsPath()), nil
		}
	}
	return r, nil
}

// quoteNullOptimizer applies (q . 0) => 0.
func quoteNullOptimizer(_ context.Context, r sexp.SExp, _ Evaluator) (sexp.SExp, error) {
	if Match(quoteNullPattern, r) != nil {
		return sexp.Nil(r.Loc()), nil
	}
	return r, nil
}

// applyNullOptimizer applies (a 0 ARGS) => 0.
func applyNullOptimizer(_ context.Context, r sexp.SExp, _ Evaluator) (sexp.SExp, error) {
	if Match(applyNullPattern, r) != nil {
		return sexp.Nil(r.Loc()), nil
	}
	return r, nil
}
