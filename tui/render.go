package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/grid"
)

const (
	loadingText = "loading..."
	failedText  = "failed"
)

// cellText is how a cell reads on screen. Failed cells show their kind so the
// user can tell a rejected request from a flaky one.
func cellText(c grid.Cell) string {
	switch c.Status {
	case grid.CellLoading:
		return loadingText
	case grid.CellResolved:
		return c.Value
	case grid.CellFailed:
		if c.Failure != nil && c.Failure.Kind != "" {
			return fmt.Sprintf("%s (%s)", failedText, c.Failure.Kind)
		}
		return failedText
	default:
		return ""
	}
}

func snapshotRows(snap grid.Snapshot) [][]string {
	rows := make([][]string, 0, len(snap.Targets))
	for _, target := range snap.Targets {
		row := make([]string, 0, len(snap.Fields)+1)
		row = append(row, target)
		for _, field := range snap.Fields {
			c, _ := snap.Cell(target, field)
			row = append(row, cellText(c))
		}
		rows = append(rows, row)
	}
	return rows
}

func summary(snap grid.Snapshot) string {
	counts := snap.Counts()
	return fmt.Sprintf("resolved %d · loading %d · failed %d · empty %d",
		counts[grid.CellResolved],
		counts[grid.CellLoading],
		counts[grid.CellFailed],
		counts[grid.CellEmpty],
	)
}

// RenderSnapshot draws the grid as a static table for non-interactive output.
func RenderSnapshot(snap grid.Snapshot) string {
	headers := append([]string{snap.Label}, snap.Fields...)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers(headers...).
		Rows(snapshotRows(snap)...)

	return lipgloss.JoinVertical(lipgloss.Left, t.String(), summary(snap))
}
