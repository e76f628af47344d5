// Package cmd implements the planctl command line, a small cobra-based tool
// for building one of the bundled sample graphs, running the allocation
// planner over it, and rendering the result -- grounded on the corpus's own
// root-command wiring (Use/Short/Long, SilenceUsage/SilenceErrors, a package
// level Execute()).
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "planctl",
	Short:         "Inspect static allocation plans for sample inference graphs",
	Long:          `planctl builds one of a handful of hand-written sample graphs, runs the static allocation planner over it, and prints the resulting plan.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion wires v into the root command's --version output.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command, returning any error a subcommand reports.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(simulateCmd)
}
