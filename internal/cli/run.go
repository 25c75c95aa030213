package cli

import (
	"fmt"
	"strings"

	"github.com/kilupskalvis/clvm-tools/internal/optimize"
	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/spf13/cobra"
)

var (
	runHex       bool
	runOptimize  bool
	runStepLimit int
)

var runCmd = &cobra.Command{
	Use:   "run <program> [env]",
	Short: "Run a compiled program",
	Long: `Run a compiled CLVM program against an environment. Both arguments
are file paths or literal text; the environment defaults to ().`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runHex, "hex", false, "Treat the program as serialized hex")
	runCmd.Flags().BoolVar(&runOptimize, "optimize", false, "Optimize the program before running")
	runCmd.Flags().IntVar(&runStepLimit, "step-limit", 0, "Abort after this many machine steps (0 = unlimited)")
}

func runRun(cmd *cobra.Command, args []string) {
	prog := loadProgram(args[0], runHex)

	env := sexp.SExp(sexp.Nil(sexp.Start("*env*")))
	if len(args) > 1 {
		env = parseArg(args[1])
	}

	runner := &runtime.Runner{StepLimit: runStepLimit}

	if runOptimize {
		optimized, err := optimize.Optimize(cmd.Context(), prog, runner)
		if err != nil {
			exitError("%v", err)
		}
		prog = optimized
	}

	result, err := runner.Run(cmd.Context(), prog, env)
	if err != nil {
		exitError("%v", err)
	}
	fmt.Println(result.String())
}

// loadProgram reads a program argument, from hex or from source.
func loadProgram(arg string, asHex bool) sexp.SExp {
	text, file := readProgram(arg)
	if asHex {
		parsed, err := sexp.DecodeHex(sexp.Start(file), strings.TrimSpace(text))
		if err != nil {
			exitError("%v", err)
		}
		return parsed
	}
	parsed, err := sexp.Parse(file, text)
	if err != nil {
		exitError("%v", err)
	}
	return parsed
}
