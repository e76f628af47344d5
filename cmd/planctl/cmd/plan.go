package cmd

import (
	"fmt"

	"github.com/nnrt/nnrt/cmd/planctl/render"
	"github.com/nnrt/nnrt/examples/samples"
	"github.com/nnrt/nnrt/planner"
	"github.com/nnrt/nnrt/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var planRaw bool

var planCmd = &cobra.Command{
	Use:   "plan <sample>",
	Short: "Run the allocation planner over a sample graph and render the plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, err := findSample(args[0])
		if err != nil {
			return err
		}

		s := session.New(sample.Graph, sample.Kernels, sample.Allocators, sample.Providers)
		plan, err := planner.CreatePlan(s)
		if err != nil {
			return errors.Wrapf(err, "planning %q", sample.Name)
		}

		if planRaw {
			return planner.Fprint(cmd.OutOrStdout(), sample.Graph, plan)
		}
		return render.Summary(cmd.OutOrStdout(), sample.Graph, plan)
	},
}

func init() {
	planCmd.Flags().BoolVar(&planRaw, "raw", false, "print the stable diagnostic text instead of the colorized table")
}

func findSample(name string) (*samples.Graph, error) {
	for _, s := range samples.All() {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown sample %q, see \"planctl list\"", name)
}
