// Package cli implements the command-line interface for clvm-tools.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/clvm-tools/internal/config"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/kilupskalvis/clvm-tools/internal/store"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Store  *store.Store
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext loads configuration (no store)
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}
	color.NoColor = color.NoColor || cfg.NoColor
	return &cmdContext{Config: cfg}
}

// initStoreContext loads configuration and opens the session store
func initStoreContext() *cmdContext {
	ctx := initContext()

	dbPath, err := ctx.Config.DatabasePathOrDefault()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(dbPath)
	if err != nil {
		exitError("failed to open store: %v", err)
	}
	if err := st.Initialize(); err != nil {
		st.Close()
		exitError("failed to initialize store: %v", err)
	}

	ctx.Store = st
	return ctx
}

var rootCmd = &cobra.Command{
	Use:   "clvm",
	Short: "CLVM toolchain",
	Long: `clvm is a toolchain for CLVM programs: assemble and disassemble
source, serialize to and from hex, run and optimize compiled programs,
and step through execution with a recording debugger.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(opcCmd)
	rootCmd.AddCommand(opdCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(optCmd)
	rootCmd.AddCommand(cldbCmd)
	rootCmd.AddCommand(dialectCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// readProgram returns program text and the file name to report in
// locations. An argument naming an existing file is read from disk;
// anything else is taken as literal source.
func readProgram(arg string) (string, string) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			exitError("failed to read %s: %v", arg, err)
		}
		return string(data), arg
	}
	return arg, "*command*"
}

// parseArg assembles a program argument, reporting parse failures as
// command errors.
func parseArg(arg string) sexp.SExp {
	text, file := readProgram(arg)
	parsed, err := sexp.Parse(file, text)
	if err != nil {
		exitError("%v", err)
	}
	return parsed
}
