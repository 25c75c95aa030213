package cli

import (
	"fmt"
	"strings"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/spf13/cobra"
)

var opdCmd = &cobra.Command{
	Use:   "opd <hex>",
	Short: "Disassemble serialized hex to source",
	Long: `Disassemble a serialized CLVM program from hex into readable
source. The argument is a file path or literal hex.`,
	Args: cobra.ExactArgs(1),
	Run:  runOpd,
}

func runOpd(cmd *cobra.Command, args []string) {
	text, file := readProgram(args[0])
	parsed, err := sexp.DecodeHex(sexp.Start(file), strings.TrimSpace(text))
	if err != nil {
		exitError("%v", err)
	}
	fmt.Println(parsed.String())
}
