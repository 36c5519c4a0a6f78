// Command progressive runs word counting through a time-sliced loader.
package main

import (
	"fmt"
	"os"

	"github.com/kbukum/progressive/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
