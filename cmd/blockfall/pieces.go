package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/engine"
)

var flagNoArt bool

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Show the configured piece table",
	Long: `Lists the pieces of the active configuration with their ids, colors,
sizes and number of distinct orientations, followed by each piece drawn
in its spawn orientation.`,
	Args: cobra.NoArgs,
	Run:  runPieces,
}

func init() {
	piecesCmd.Flags().BoolVar(&flagNoArt, "no-art", false, "Only print the summary table")
}

func runPieces(cmd *cobra.Command, args []string) {
	variants, err := gameCfg.Variants()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Pieces (%s):\n\n", cfgSource)
	fmt.Println(piecesTable(variants))

	if flagNoArt {
		return
	}
	for i, v := range variants {
		fmt.Printf("\n%s  %s\n", v.Name, gameCfg.Pieces[i].Color)
		fmt.Println(strings.ReplaceAll(v.Shape.String(), "#", "█"))
	}
}

// piecesTable renders a static summary table of the variants.
func piecesTable(variants []engine.Variant) string {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 8},
		{Title: "Color", Width: 16},
		{Title: "Size", Width: 6},
		{Title: "Turns", Width: 6},
	}

	rows := make([]table.Row, 0, len(variants))
	for i, v := range variants {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", v.ID),
			v.Name,
			gameCfg.Pieces[i].Color,
			fmt.Sprintf("%dx%d", v.Shape.Width(), v.Shape.Height()),
			fmt.Sprintf("%d", orientations(v.Shape)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	t.SetHeight(len(rows) + 2) // Header plus its bottom border

	return t.View()
}

// orientations counts the distinct rotations of a shape.
func orientations(s engine.Shape) int {
	n := 1
	for r := s.Rotate(); !r.Equal(s); r = r.Rotate() {
		n++
	}
	return n
}
