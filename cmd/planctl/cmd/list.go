package cmd

import (
	"fmt"

	"github.com/nnrt/nnrt/examples/samples"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled sample graphs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range samples.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%d values, %d nodes)\n", s.Name, s.Graph.NumValues(), len(s.Graph.TopologicalOrder()))
		}
		return nil
	},
}
