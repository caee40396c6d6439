package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}
