// Command sdcgen generates component schemas from Twig templates.
package main

import (
	"fmt"
	"os"

	"github.com/qed42/twig-sdc-yaml-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
