package board

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dedene/flipboard-cli/internal/sanitize"
)

// Frame is the animation tick interval.
const Frame = 50 * time.Millisecond

// flipGlyphs are cycled through while a tile is flipping.
const flipGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model for the animated board. Time advances one
// Frame per tick so rendering is deterministic.
type Model struct {
	cells   []Cell
	style   Style
	elapsed time.Duration
	settled bool
	skipped bool
}

// NewModel builds an animated board for text. text is sanitized first.
func NewModel(text string, st Style) Model {
	safe := sanitize.String(text)
	if sanitize.IsBlank(safe) {
		return Model{style: st, settled: true}
	}

	return Model{cells: Cells(safe), style: st}
}

// Init starts the ticker, or quits right away for an empty board.
func (m Model) Init() tea.Cmd {
	if m.settled {
		return tea.Quit
	}

	return tick()
}

// Update advances the animation and handles the quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			m.settled = true
			m.skipped = true

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.style.Width = msg.Width

	case tickMsg:
		if m.settled {
			return m, nil
		}

		m.elapsed += Frame
		if m.elapsed >= m.Duration() {
			m.settled = true

			return m, tea.Quit
		}

		return m, tick()
	}

	return m, nil
}

// View renders the board at the current point of the animation.
func (m Model) View() string {
	if len(m.cells) == 0 {
		return renderPlaceholder(m.style) + "\n"
	}

	return renderTiles(m.frame(), m.style) + "\n"
}

// frame returns the character each tile shows right now.
func (m Model) frame() []rune {
	chars := make([]rune, len(m.cells))
	step := int(m.elapsed / Frame)

	for i, c := range m.cells {
		switch {
		case m.settled || m.elapsed >= c.Delay+FlipDuration:
			chars[i] = c.Char
		case m.elapsed >= c.Delay:
			chars[i] = rune(flipGlyphs[(step+i)%len(flipGlyphs)])
		default:
			chars[i] = ' '
		}
	}

	return chars
}

// Duration is the time until the last tile settles.
func (m Model) Duration() time.Duration {
	if len(m.cells) == 0 {
		return 0
	}

	return m.cells[len(m.cells)-1].Delay + FlipDuration
}

// Settled reports whether every tile shows its final character.
func (m Model) Settled() bool { return m.settled }

// Skipped reports whether the user cut the animation short.
func (m Model) Skipped() bool { return m.skipped }
