package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable builds a formatted table string using lipgloss.
// When color is true, headers and borders use the theme palette.
// When color is false, a plain table is produced.
func RenderTable(headers []string, rows [][]string, color bool, theme Theme) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		BorderColumn(true).
		BorderHeader(true)

	if color {
		palette := theme.Palette()
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(palette.Accent)
		cellStyle := lipgloss.NewStyle()

		t.BorderStyle(lipgloss.NewStyle().Foreground(palette.Border))
		t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	}

	return t.Render()
}
