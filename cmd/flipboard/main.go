// Package main is the entry point for the flipboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dedene/flipboard-cli/internal/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		if cmd.ShouldReport(err) {
			fmt.Fprintln(os.Stderr, "flipboard:", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
