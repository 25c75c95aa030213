// Command clvm is the CLVM toolchain CLI.
package main

import (
	"os"

	"github.com/kilupskalvis/clvm-tools/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
