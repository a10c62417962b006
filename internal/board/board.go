// Package board renders sanitized messages as a split-flap board: one tile
// per character, revealed left to right.
package board

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dedene/flipboard-cli/internal/sanitize"
	"github.com/dedene/flipboard-cli/internal/ui"
)

// Placeholder is shown instead of an empty board.
const Placeholder = "Share a message"

// Stagger is the delay between two neighbouring tiles starting to flip.
const Stagger = 50 * time.Millisecond

// FlipDuration is how long a single tile keeps flipping.
const FlipDuration = 600 * time.Millisecond

// tileWidth is the rendered width of one tile, borders included.
const tileWidth = 3

// Cell is one tile of the board.
type Cell struct {
	Char  rune
	Delay time.Duration
}

// Cells splits safe text into tiles. The i-th tile starts flipping after
// i*Stagger.
func Cells(safe string) []Cell {
	cells := make([]Cell, 0, len(safe))

	i := 0
	for _, r := range safe {
		cells = append(cells, Cell{Char: r, Delay: time.Duration(i) * Stagger})
		i++
	}

	return cells
}

// Style controls how the board is drawn.
type Style struct {
	Palette ui.Palette
	Width   int  // terminal columns; 0 means unbounded
	Color   bool // emit ANSI colors
}

// Render draws text as a static, fully settled board. text is sanitized
// first; a blank result renders the placeholder.
func Render(text string, st Style) string {
	safe := sanitize.String(text)
	if sanitize.IsBlank(safe) {
		return renderPlaceholder(st)
	}

	return renderTiles([]rune(safe), st)
}

func renderer(st Style) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	if st.Color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return r
}

func renderPlaceholder(st Style) string {
	return renderer(st).NewStyle().Foreground(st.Palette.Muted).Render(Placeholder)
}

// renderTiles lays out one bordered tile per rune, wrapping rows to the
// style width.
func renderTiles(chars []rune, st Style) string {
	r := renderer(st)
	tile := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.Palette.Border).
		Foreground(st.Palette.Foreground).
		Bold(true)

	perRow := len(chars)
	if st.Width > 0 {
		perRow = max(1, min(perRow, st.Width/tileWidth))
	}

	rows := make([]string, 0, len(chars)/perRow+1)
	for start := 0; start < len(chars); start += perRow {
		end := min(start+perRow, len(chars))

		tiles := make([]string, 0, end-start)
		for _, c := range chars[start:end] {
			tiles = append(tiles, tile.Render(string(c)))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return strings.Join(rows, "\n")
}
