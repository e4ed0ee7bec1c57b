package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/quiver"
	"github.com/matzehuels/quiverview/pkg/route"
)

// inspectCommand creates the inspect command, which prints the arrow pairs of
// a quiver together with the arc curvatures the router assigns to them.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the arrows of a quiver and their routing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			q, err := readQuiver(args[0], cfg.View)
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(args[0]))
			printKeyValue("nodes", strings.Join(q.NodeIDs(), ", "))
			printStats(q.NodeCount(), q.EdgeCount(), countLoops(q))
			fmt.Println(pairTable(q, cfg.View))
			printNextStep("Open it", appName+" view "+args[0])
			return nil
		},
	}
}

// pairTable renders one row per ordered pair: multiplicity, labels and the
// curvatures of its arcs (or the petal settings for loops).
func pairTable(q *quiver.Quiver, cfg config.View) string {
	rows := make([][]string, 0, len(q.Pairs()))
	for _, p := range q.Pairs() {
		edges := q.Between(p.Source, p.Target)
		labels := make([]string, len(edges))
		for i, e := range edges {
			labels[i] = strconv.Quote(e.Label)
		}

		var geometry string
		if p.IsLoop() {
			geometry = fmt.Sprintf("loop %g°, rad %g", edges[0].Loop.Angle, route.LoopRad)
		} else {
			rads := route.Curvatures(len(edges), q.Count(p.Target, p.Source), cfg.ArcStep)
			parts := make([]string, len(rads))
			for i, r := range rads {
				parts[i] = strconv.FormatFloat(r, 'f', 2, 64)
			}
			geometry = "rad " + strings.Join(parts, ", ")
		}
		rows = append(rows, []string{p.String(), strconv.Itoa(len(edges)), strings.Join(labels, " "), geometry})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pair", "Count", "Labels", "Geometry").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return StyleNumber.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	return t.Render()
}
