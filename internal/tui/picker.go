package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dedene/flipboard-cli/internal/board"
	"github.com/dedene/flipboard-cli/internal/history"
	"github.com/dedene/flipboard-cli/internal/sanitize"
	"github.com/dedene/flipboard-cli/internal/share"
)

// State represents the current phase of the TUI model.
type State int

const (
	// StatePicking is the history picker phase.
	StatePicking State = iota
	// StateComposing is the message composer phase.
	StateComposing
	// StateDone means the TUI is finished and ready to quit.
	StateDone
)

const inputPlaceholder = "Type your message here..."

// inputLabel heads the textarea, below the preview.
const inputLabel = "Your message"

// hintBlank is shown when ctrl+s is pressed on an empty composer.
const hintBlank = "Nothing to share yet"

// Model is the bubbletea model for the composer and the history picker.
type Model struct {
	state     State
	list      list.Model
	selected  *history.Entry
	cancelled bool
	width     int
	height    int
	ready     bool
	hasList   bool

	// Composer fields (StateComposing).
	input      textarea.Model
	fromPicker bool
	text       string
	hint       string
	style      board.Style
}

// NewPicker creates a picker Model over history items. Enter selects an
// entry; "e" opens it in the composer.
func NewPicker(items []list.Item, st board.Style) Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Recent messages"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Model{
		state:   StatePicking,
		list:    l,
		hasList: true,
		style:   st,
	}
}

// NewComposer creates a Model that starts in the composer, prefilled with
// initial.
func NewComposer(initial string, st board.Style) Model {
	m := Model{style: st}

	return m.compose(initial, false)
}

func newInput(initial string, width int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = sanitize.MaxLength
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	if width > 4 {
		ta.SetWidth(width - 4)
	}

	ta.SetValue(initial)
	ta.Focus()

	return ta
}

func (m Model) compose(initial string, fromPicker bool) Model {
	m.input = newInput(initial, m.width)
	m.fromPicker = fromPicker
	m.hint = ""
	m.state = StateComposing

	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	if m.state == StateComposing {
		return textarea.Blink
	}

	return nil
}

// Update handles messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.style.Width = wsm.Width
		if m.hasList {
			m.list.SetSize(wsm.Width, wsm.Height-2)
		}

		if m.state == StateComposing && wsm.Width > 4 {
			m.input.SetWidth(wsm.Width - 4)
		}

		m.ready = true

		return m, nil
	}

	switch m.state {
	case StatePicking:
		return m.updatePicking(msg)
	case StateComposing:
		return m.updateComposing(msg)
	}

	return m, nil
}

// updatePicking handles messages in the history picker state.
func (m Model) updatePicking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.state = StateDone

			return m, tea.Quit

		case "enter":
			item, ok := m.list.SelectedItem().(HistoryItem)
			if !ok {
				return m, nil
			}

			e := item.Entry()
			m.selected = &e
			m.state = StateDone

			return m, tea.Quit

		case "e":
			item, ok := m.list.SelectedItem().(HistoryItem)
			if !ok {
				return m, nil
			}

			return m.compose(item.Entry().Message, true), textarea.Blink
		}
	} else if ok && keyMsg.String() == "ctrl+c" {
		m.cancelled = true
		m.state = StateDone

		return m, tea.Quit
	}

	// Delegate to list component.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// updateComposing handles messages in the composer state.
func (m Model) updateComposing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.cancelled = true
			m.state = StateDone

			return m, tea.Quit

		case "esc":
			if m.fromPicker {
				m.state = StatePicking
				m.fromPicker = false

				return m, nil
			}

			m.cancelled = true
			m.state = StateDone

			return m, tea.Quit

		case "ctrl+s":
			value := m.input.Value()
			if strings.TrimSpace(value) == "" {
				m.hint = hintBlank

				return m, nil
			}

			m.text = value
			m.state = StateDone

			return m, tea.Quit
		}
	}

	m.hint = ""

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View renders the current TUI state.
func (m Model) View() string {
	switch m.state {
	case StatePicking:
		if !m.ready {
			return "Loading..."
		}

		return m.list.View()
	case StateComposing:
		return m.viewComposing()
	}

	return ""
}

// viewComposing renders the live preview above the input.
func (m Model) viewComposing() string {
	var b strings.Builder

	value := m.input.Value()

	b.WriteString("Live preview\n\n")
	b.WriteString(board.Render(share.Preview(value), m.style))
	b.WriteString("\n\n" + inputLabel + "\n")
	b.WriteString(m.input.View())
	fmt.Fprintf(&b, "\n%d / %d", utf8.RuneCountInString(value), sanitize.MaxLength)

	if m.hint != "" {
		b.WriteString("  " + m.hint)
	}

	back := "cancel"
	if m.fromPicker {
		back = "back"
	}

	fmt.Fprintf(&b, "\n\n  Ctrl+S: share | Esc: %s | Ctrl+C: quit\n", back)

	return b.String()
}

// Selected returns the picked history entry, or nil if none was picked.
func (m Model) Selected() *history.Entry { return m.selected }

// Text returns the composed message once it was submitted.
func (m Model) Text() string { return m.text }

// Cancelled returns true if the user cancelled.
func (m Model) Cancelled() bool { return m.cancelled }

// State returns the current state.
func (m Model) State() State { return m.state }
