package cli

import (
	"fmt"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/spf13/cobra"
)

var opcCmd = &cobra.Command{
	Use:   "opc <program>",
	Short: "Assemble a program to serialized hex",
	Long: `Assemble CLVM source into its serialized hex form. The argument
is a file path or literal source text.`,
	Args: cobra.ExactArgs(1),
	Run:  runOpc,
}

func runOpc(cmd *cobra.Command, args []string) {
	parsed := parseArg(args[0])
	fmt.Println(sexp.EncodeHex(parsed))
}
