// Command bprctl is the operator CLI: offline scoring of a department file,
// quarter and period lookups, and development tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "bprctl",
	Short:         "Operator tools for the BPR dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(tokenCmd, scoreCmd, quarterCmd, weekCmd, periodCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bprctl:", err)
		os.Exit(1)
	}
}
