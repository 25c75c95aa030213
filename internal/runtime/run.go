package runtime

import (
	"context"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// cancelCheckInterval is how many transitions run between context
// checks.
const cancelCheckInterval = 1024

// Runner drives the step machine to completion. A StepLimit of zero
// means unlimited.
type Runner struct {
	StepLimit int
}

// Run evaluates prog against env and returns the final value.
func (r *Runner) Run(ctx context.Context, prog, env sexp.SExp) (sexp.SExp, error) {
	step := Start(prog, env)
	steps := 0
	for {
		if done, ok := step.(*DoneStep); ok {
			return done.Value, nil
		}

		next, fail := Next(step)
		if fail != nil {
			return nil, fail
		}
		step = next

		steps++
		if r.StepLimit > 0 && steps > r.StepLimit {
			return nil, errf(prog.Loc(), "step limit of %d exceeded", r.StepLimit)
		}
		if steps%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
	}
}
