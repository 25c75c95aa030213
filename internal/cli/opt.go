package cli

import (
	"fmt"

	"github.com/kilupskalvis/clvm-tools/internal/optimize"
	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/spf13/cobra"
)

var optHex bool

var optCmd = &cobra.Command{
	Use:   "opt <program>",
	Short: "Optimize a compiled program",
	Long: `Rewrite a compiled CLVM program into a cheaper equivalent by
folding constant subexpressions and collapsing redundant structure.`,
	Args: cobra.ExactArgs(1),
	Run:  runOpt,
}

func init() {
	optCmd.Flags().BoolVar(&optHex, "hex", false, "Treat the program as serialized hex")
}

func runOpt(cmd *cobra.Command, args []string) {
	prog := loadProgram(args[0], optHex)

	optimized, err := optimize.Optimize(cmd.Context(), prog, &runtime.Runner{})
	if err != nil {
		exitError("%v", err)
	}
	fmt.Println(optimized.String())
}
