package debug

import (
	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// RunEnv carries what is known about the running program: the source
// file name, its lines for picking function names out of locations,
// and the consumer's step overrides.
type RunEnv struct {
	inputFile    string
	programLines []string
	overrides    Runnable
}

// NewRunEnv builds an Env for a program read from inputFile. The
// file name may be empty when the program came from hex.
func NewRunEnv(inputFile string, programLines []string, overrides Runnable) *RunEnv {
	return &RunEnv{
		inputFile:    inputFile,
		programLines: programLines,
		overrides:    overrides,
	}
}

// AddContext records the environment of an apply, or the literal
// arguments of any other operator.
func (e *RunEnv) AddContext(op, context, args sexp.SExp, out map[string]string) {
	if isOp(op, sexp.OpApply) {
		if p, ok := context.(*sexp.Pair); ok {
			out["Env"] = p.First.String()
			out["Env-Args"] = p.Rest.String()
		} else {
			out["Function-Context"] = context.String()
		}
		return
	}
	if args != nil {
		out["Arguments"] = args.String()
	}
}

// AddFunction names the operator from the program source when the
// location points into the input file.
func (e *RunEnv) AddFunction(op sexp.SExp, out map[string]string) {
	if isOp(op, sexp.OpApply) {
		return
	}
	loc := op.Loc()
	if loc.File != e.inputFile || e.inputFile == "" {
		return
	}
	if name, ok := e.extractText(loc); ok {
		out["Function"] = name
	}
}

func (e *RunEnv) GetOverride(step runtime.Step) (runtime.Step, runtime.Failure) {
	return e.overrides.ReplaceStep(step)
}

// extractText retrieves the source text covered by a location.
func (e *RunEnv) extractText(l sexp.Srcloc) (string, bool) {
	if l.Line < 1 || l.Col < 1 {
		return "", false
	}
	line, col := l.Line-1, l.Col-1
	if line >= len(e.programLines) {
		return "", false
	}
	text := e.programLines[line]
	if col >= len(text) {
		return "", false
	}
	end := col + 1
	if l.Until != nil {
		end = l.Until.Col - 1
	}
	if end > len(text) {
		end = len(text)
	}
	if end <= col {
		return "", false
	}
	return text[col:end], true
}
