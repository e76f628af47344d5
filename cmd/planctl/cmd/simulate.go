package cmd

import (
	"fmt"
	"time"

	"github.com/nnrt/nnrt/cmd/planctl/render"
	"github.com/nnrt/nnrt/planner"
	"github.com/nnrt/nnrt/session"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var simulateStepDelay time.Duration

var simulateCmd = &cobra.Command{
	Use:   "simulate <sample>",
	Short: "Step through a sample graph's execution plan with a progress bar",
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

		bar := progressbar.NewOptions(len(plan.ExecutionPlan),
			progressbar.OptionSetDescription("[bold]replaying steps[reset]"),
			progressbar.OptionSetWriter(cmd.OutOrStdout()),
			progressbar.OptionUseANSICodes(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
		)

		for range plan.ExecutionPlan {
			if simulateStepDelay > 0 {
				time.Sleep(simulateStepDelay)
			}
			if err := bar.Add(1); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout())

		return render.Steps(cmd.OutOrStdout(), sample.Graph, plan)
	},
}

func init() {
	simulateCmd.Flags().DurationVar(&simulateStepDelay, "step-delay", 0, "pause between steps, for visually watching the bar advance")
}
