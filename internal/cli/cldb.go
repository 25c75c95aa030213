package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilupskalvis/clvm-tools/internal/debug"
	"github.com/kilupskalvis/clvm-tools/internal/models"
	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/kilupskalvis/clvm-tools/internal/store"
	"github.com/kilupskalvis/clvm-tools/internal/symbols"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cldbHex       bool
	cldbSymbols   string
	cldbSave      bool
	cldbOnlyFinal bool
	cldbStepLimit int
)

var cldbCmd = &cobra.Command{
	Use:   "cldb <program> [env]",
	Short: "Step through a program and report each transition",
	Long: `Run a compiled CLVM program stepwise and print a YAML trace of
every operator entry and result. With a symbol table, applied
functions are reported by name. Traces can be saved as sessions
for later replay with the sessions command.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runCldb,
}

func runCldb(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	var table map[string]string
	if cldbSymbols != "" {
		loaded, err := symbols.Load(cldbSymbols, c.Config.ResolvedSearchPaths())
		if err != nil {
			exitError("%v", err)
		}
		table = loaded
	}

	text, file := readProgram(args[0])
	var prog sexp.SExp
	var programLines []string
	if cldbHex {
		parsed, err := debug.HexToProgram(strings.TrimSpace(text), sexp.Start(file), table)
		if err != nil {
			exitError("%v", err)
		}
		prog = parsed
	} else {
		parsed, err := sexp.Parse(file, text)
		if err != nil {
			exitError("%v", err)
		}
		prog = parsed
		programLines = strings.Split(text, "\n")
	}

	env := sexp.SExp(sexp.Nil(sexp.Start("*env*")))
	envText := ""
	if len(args) > 1 {
		env = parseArg(args[1])
		envText = env.String()
	}

	runEnv := debug.NewRunEnv(file, programLines, debug.NoOverride{})
	run := debug.New(runEnv, runtime.Start(prog, env))

	trace := collectTrace(run, cldbStepLimit)

	if cldbSave {
		sc := initStoreContext()
		defer sc.Close()
		id := saveSession(sc, prog, envText, trace, run)
		fmt.Fprintf(cmd.ErrOrStderr(), "saved session %s\n", id[:7])
	}

	printTrace(trace, run, cldbOnlyFinal)
}

func init() {
	cldbCmd.Flags().BoolVar(&cldbHex, "hex", false, "Treat the program as serialized hex")
	cldbCmd.Flags().StringVarP(&cldbSymbols, "symbols", "y", "", "Symbol table for the compiled program")
	cldbCmd.Flags().BoolVar(&cldbSave, "save", false, "Record the run as a session")
	cldbCmd.Flags().BoolVar(&cldbOnlyFinal, "only-final", false, "Print only the final value")
	cldbCmd.Flags().IntVar(&cldbStepLimit, "step-limit", 0, "Abort after this many machine steps (0 = unlimited)")
}

// collectTrace drives a stepwise run to the end and gathers its
// reports in order.
func collectTrace(run *debug.Run, stepLimit int) []map[string]string {
	var trace []map[string]string
	steps := 0
	for !run.Ended() {
		if report := run.Step(); report != nil {
			trace = append(trace, report)
		}
		steps++
		if stepLimit > 0 && steps > stepLimit {
			trace = append(trace, map[string]string{
				"Failure": fmt.Sprintf("step limit of %d exceeded", stepLimit),
			})
			break
		}
	}
	return trace
}

func printTrace(trace []map[string]string, run *debug.Run, onlyFinal bool) {
	if onlyFinal {
		if final := run.FinalResult(); final != nil {
			fmt.Println(final.String())
			return
		}
		if len(trace) > 0 {
			last := trace[len(trace)-1]
			for _, key := range []string{"Throw", "Failure"} {
				if v, ok := last[key]; ok {
					exitError("%s: %s", strings.ToLower(key), v)
				}
			}
		}
		exitError("run produced no final value")
	}

	out, err := yaml.Marshal(trace)
	if err != nil {
		exitError("failed to render trace: %v", err)
	}
	fmt.Print(string(out))
}

// saveSession records the trace under a new session and returns its
// ID.
func saveSession(c *cmdContext, prog sexp.SExp, envText string, trace []map[string]string, run *debug.Run) string {
	program := prog.String()
	session := &models.DebugSession{
		ID:          store.NewSessionID(program, time.Now()),
		Program:     program,
		Env:         envText,
		SymbolsFile: cldbSymbols,
		Status:      sessionStatus(trace, run),
		StepCount:   len(trace),
	}
	if final := run.FinalResult(); final != nil {
		session.Final = final.String()
	}

	if err := c.Store.CreateSession(session); err != nil {
		exitError("%v", err)
	}
	for i, report := range trace {
		step := &models.DebugStep{Row: i, Fields: report}
		if err := c.Store.AddStep(session.ID, step); err != nil {
			exitError("%v", err)
		}
	}
	return session.ID
}

func sessionStatus(trace []map[string]string, run *debug.Run) string {
	if run.FinalResult() != nil {
		return models.SessionCompleted
	}
	if len(trace) > 0 {
		if _, ok := trace[len(trace)-1]["Throw"]; ok {
			return models.SessionThrew
		}
	}
	return models.SessionFailed
}
