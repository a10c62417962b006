// Package preview prints a static board to the terminal, sized to the
// terminal width.
package preview

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dedene/flipboard-cli/internal/board"
	"github.com/dedene/flipboard-cli/internal/ui"
)

const (
	defaultWidth = 60
	maxWidth     = 120
)

// TerminalWidth reports the width of fd (swappable in tests).
var TerminalWidth = func(fd int) (int, error) {
	w, _, err := term.GetSize(fd)
	return w, err
}

// Options configures board preview rendering.
type Options struct {
	// Width in character cells. 0 = auto-detect from terminal.
	Width int
	// Writer receives the rendered board. Typically os.Stderr.
	Writer io.Writer
	// Palette colors the tiles.
	Palette ui.Palette
	// Color enables ANSI colors.
	Color bool
}

// Show renders text as a settled board to opts.Writer.
func Show(text string, opts Options) error {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	width := opts.Width
	if width <= 0 {
		width = detectWidth()
	}

	out := board.Render(text, board.Style{Palette: opts.Palette, Width: width, Color: opts.Color})
	if _, err := fmt.Fprintln(opts.Writer, out); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}

	return nil
}

func detectWidth() int {
	w, err := TerminalWidth(int(os.Stderr.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}

	return min(w, maxWidth)
}
