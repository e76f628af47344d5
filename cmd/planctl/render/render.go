// Package render turns a planner.ExecutionPlan into colorized terminal
// output, the human-facing counterpart to planner.Fprint's stable diagnostic
// text -- grounded on the same lipgloss/termenv styling the corpus uses for
// its own command-line progress and stats display.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/nnrt/nnrt/graphir"
	"github.com/nnrt/nnrt/planner"
)

// colorProfile is detected once from the environment (COLORTERM, TERM,
// NO_COLOR) the way the teacher's own commandline package lets termenv drive
// its color mode, and fed to lipgloss so every style below degrades to plain
// text on a dumb terminal instead of leaking escape codes.
var colorProfile = termenv.EnvColorProfile()

func init() {
	lipgloss.SetColorProfile(colorProfile)
}

// plain reports whether the detected terminal supports no ANSI color at all,
// in which case the table falls back to a plain ASCII border instead of the
// rounded Unicode one.
func plain() bool { return colorProfile == termenv.Ascii }

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	reuseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fenceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	borderColor  = lipgloss.Color("62")
	tableStyle   = lipgloss.NewStyle().Padding(0, 1)
	rightPadding = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
)

// Summary writes a colorized allocation table for plan, one row per value,
// followed by a footprint estimate.
func Summary(w io.Writer, graph *graphir.Graph, plan *planner.ExecutionPlan) error {
	if _, err := fmt.Fprintln(w, headerStyle.Render("Allocation Plan")); err != nil {
		return err
	}

	border := lipgloss.RoundedBorder()
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	if plain() {
		border = lipgloss.ASCIIBorder()
		borderStyle = lipgloss.NewStyle()
	}

	t := lgtable.New().
		Border(border).
		BorderStyle(borderStyle).
		Headers("#", "Value", "Kind", "Reuses", "Fence").
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return rightPadding
			}
			return tableStyle
		})

	for idx := 0; idx < graph.NumValues(); idx++ {
		elt := plan.AllocationPlan[idx]
		reuses := "-"
		kindCell := elt.AllocKind.String()
		if elt.AllocKind == planner.Reuse {
			reuses = strconv.Itoa(int(elt.ReusedBuffer))
			kindCell = reuseStyle.Render(kindCell)
		}
		fenceCell := "-"
		if elt.CreateFence {
			fenceCell = fenceStyle.Render("fence")
		}
		t.Row(strconv.Itoa(idx), graph.ValueName(graphir.ValueIndex(idx)), kindCell, reuses, fenceCell)
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}

	est := planner.EstimateFootprint(graph, plan)
	if _, err := fmt.Fprintln(w, dimStyle.Render("Estimated static footprint: "+est.String())); err != nil {
		return err
	}

	freedCount := len(plan.ToBeFreed)
	_, err := fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Values freed during execution: %s", humanize.Comma(int64(freedCount)))))
	return err
}

// Steps writes one line per execution step, highlighting steps that free
// values.
func Steps(w io.Writer, graph *graphir.Graph, plan *planner.ExecutionPlan) error {
	if _, err := fmt.Fprintln(w, headerStyle.Render("Execution Steps")); err != nil {
		return err
	}
	for i, step := range plan.ExecutionPlan {
		node := graph.Node(step.NodeIndex)
		line := fmt.Sprintf("[%d] %s (%s)", i, node.OpType, node.Name)
		if !step.FreesNothing() {
			names := make([]string, 0, step.FreeToIndex-step.FreeFromIndex+1)
			for j := step.FreeFromIndex; j <= step.FreeToIndex; j++ {
				names = append(names, graph.ValueName(plan.ToBeFreed[j]))
			}
			line += "  " + dimStyle.Render(fmt.Sprintf("frees %v", names))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
