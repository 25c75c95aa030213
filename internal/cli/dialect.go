package cli

import (
	"fmt"

	"github.com/kilupskalvis/clvm-tools/internal/dialect"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/spf13/cobra"
)

var dialectCmd = &cobra.Command{
	Use:   "dialect <program>",
	Short: "Detect the chialisp dialect of a source program",
	Long: `Scan a chialisp source program for a dialect include such as
(include *standard-cl-21*) and report the stepping it selects.
Programs without a dialect sigil report classic.`,
	Args: cobra.ExactArgs(1),
	Run:  runDialect,
}

func runDialect(cmd *cobra.Command, args []string) {
	text, file := readProgram(args[0])
	parsed, err := sexp.Parse(file, text)
	if err != nil {
		exitError("%v", err)
	}

	accepted := dialect.DetectModern(parsed)
	if accepted.Stepping == 0 {
		fmt.Println("classic")
		return
	}
	fmt.Printf("standard-cl-%d\n", accepted.Stepping)
}
