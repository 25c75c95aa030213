// Package debug implements the stepwise CLVM debugger. A Run advances
// the runtime machine one transition at a time and reports each
// observable event as a map of printable facts, so callers can watch
// evaluation progress in order.
package debug

import (
	"strconv"
	"strings"

	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// Runnable lets consumers replace a pending step, for tracing or
// mocking. A nil, nil return leaves the step alone.
type Runnable interface {
	ReplaceStep(step runtime.Step) (runtime.Step, runtime.Failure)
}

// Env is the debugger's view of the running program. It decorates
// step reports with context and function information and may override
// steps.
type Env interface {
	AddContext(op, context, args sexp.SExp, out map[string]string)
	AddFunction(op sexp.SExp, out map[string]string)
	GetOverride(step runtime.Step) (runtime.Step, runtime.Failure)
}

type priorResult struct {
	reference int
}

// Run executes a program stepwise. Each call to Step may return a
// report describing the transition just taken; the run has ended once
// Ended reports true.
type Run struct {
	env Env

	step runtime.Step

	ended       bool
	finalResult sexp.SExp
	toPrint     map[string]string
	inExpr      bool
	row         int

	outputsToStep map[string]priorResult
}

// New prepares a stepwise run from an initial machine state, normally
// runtime.Start(program, env).
func New(env Env, step runtime.Step) *Run {
	return &Run{
		env:           env,
		step:          step,
		toPrint:       map[string]string{},
		outputsToStep: map[string]priorResult{},
	}
}

// Ended reports whether the run finished, by completion or failure.
func (r *Run) Ended() bool { return r.ended }

// FinalResult returns the final value, or nil if the run has not
// completed successfully.
func (r *Run) FinalResult() sexp.SExp { return r.finalResult }

// Step advances the machine one transition and returns a report for
// observable events, or nil for internal transitions.
func (r *Run) Step() map[string]string {
	if r.ended {
		return nil
	}

	newStep, fail := r.env.GetOverride(r.step)
	if newStep == nil && fail == nil {
		newStep, fail = runtime.Next(r.step)
	}

	produce := false
	result := map[string]string{}

	switch {
	case fail != nil:
		switch f := fail.(type) {
		case *runtime.Exn:
			r.toPrint["Throw-Location"] = f.Loc.String()
			r.toPrint["Throw"] = f.Value.String()
		default:
			r.toPrint["Failure-Location"] = f.FailLoc().String()
			r.toPrint["Failure"] = fail.Error()
		}
		result, r.toPrint = r.toPrint, map[string]string{}
		r.ended = true
		produce = true

	default:
		switch st := newStep.(type) {
		case *runtime.ResultStep:
			if r.inExpr {
				r.toPrint["Result-Location"] = st.L.String()
				r.toPrint["Value"] = st.Value.String()
				r.toPrint["Row"] = strconv.Itoa(r.row)
				if atom, ok := st.Value.(*sexp.Atom); ok {
					r.outputsToStep[atom.Number().String()] = priorResult{reference: r.row}
				}
				r.inExpr = false
				result, r.toPrint = r.toPrint, map[string]string{}
				produce = true
			}

		case *runtime.DoneStep:
			r.toPrint["Final-Location"] = st.L.String()
			r.toPrint["Final"] = st.Value.String()
			r.ended = true
			r.finalResult = st.Value
			result, r.toPrint = r.toPrint, map[string]string{}
			produce = true

		case *runtime.OpStep:
			if st.Values == nil {
				r.toPrint["Operator-Location"] = st.Args.Loc().String()
				r.toPrint["Operator"] = st.Op.String()
				if isOp(st.Op, sexp.OpSha256) {
					refs := r.argAssociations(st.Args)
					r.toPrint["Argument-Refs"] = formatArgRefs(refs)
				}
				r.env.AddContext(st.Op, st.Env, st.Args, r.toPrint)
				r.env.AddFunction(st.Op, r.toPrint)
				r.inExpr = true
			}
		}
	}

	if fail == nil {
		r.step = newStep
	}

	if produce {
		r.row++
		return result
	}
	return nil
}

// argAssociations collects prior-result references for atomic
// arguments whose values were produced by earlier rows.
func (r *Run) argAssociations(args sexp.SExp) []priorResult {
	var result []priorResult
	for {
		p, ok := args.(*sexp.Pair)
		if !ok {
			return result
		}
		if atom, ok := p.First.(*sexp.Atom); ok {
			if prior, ok := r.outputsToStep[atom.Number().String()]; ok {
				result = append(result, prior)
			}
		}
		args = p.Rest
	}
}

func formatArgRefs(refs []priorResult) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = strconv.Itoa(ref.reference)
	}
	return strings.Join(parts, ", ")
}

func isOp(s sexp.SExp, code byte) bool {
	atom, ok := s.(*sexp.Atom)
	return ok && len(atom.Value) == 1 && atom.Value[0] == code
}

// NoOverride is a Runnable that never replaces a step.
type NoOverride struct{}

func (NoOverride) ReplaceStep(runtime.Step) (runtime.Step, runtime.Failure) {
	return nil, nil
}
