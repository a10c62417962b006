package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedene/flipboard-cli/internal/board"
	"github.com/dedene/flipboard-cli/internal/history"
	"github.com/dedene/flipboard-cli/internal/ui"
)

var testStyle = board.Style{Palette: ui.ThemeLight.Palette(), Width: 80}

func testEntries() []history.Entry {
	return []history.Entry{
		{ID: "b", Message: "See you at 5!", Timestamp: 1700000002000},
		{ID: "a", Message: "Hello <b>World</b>", Timestamp: 1700000001000},
	}
}

func testItems() []list.Item { return HistoryItems(testEntries()) }

func sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: 80, Height: 24}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	result, cmd := m.Update(msg)
	model, ok := result.(Model)
	require.True(t, ok)

	return model, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func readyModel(t *testing.T) Model {
	t.Helper()

	m, _ := update(t, NewPicker(testItems(), testStyle), sizeMsg())

	return m
}

func composerModel(t *testing.T) Model {
	t.Helper()

	m, _ := update(t, NewComposer("", testStyle), sizeMsg())

	return m
}

// --- History picker ---

func TestNewPicker_InitialState(t *testing.T) {
	m := NewPicker(testItems(), testStyle)

	assert.Equal(t, StatePicking, m.State())
	assert.False(t, m.Cancelled())
	assert.Nil(t, m.Selected())
	assert.False(t, m.ready)
}

func TestPicker_WindowSizeMsg(t *testing.T) {
	model := readyModel(t)

	assert.True(t, model.ready)
	assert.Equal(t, 80, model.width)
	assert.Equal(t, 24, model.height)
	assert.Equal(t, 80, model.style.Width)
}

func TestPicker_EnterSelectsNewest(t *testing.T) {
	model, cmd := update(t, readyModel(t), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateDone, model.State())
	require.NotNil(t, model.Selected())
	assert.Equal(t, "b", model.Selected().ID)
	assert.False(t, model.Cancelled())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPicker_CursorThenEnter(t *testing.T) {
	m, _ := update(t, readyModel(t), tea.KeyMsg{Type: tea.KeyDown})
	model, _ := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, model.Selected())
	assert.Equal(t, "a", model.Selected().ID)
}

func TestPicker_EmptyEnterDoesNothing(t *testing.T) {
	m, _ := update(t, NewPicker(nil, testStyle), sizeMsg())
	model, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StatePicking, model.State())
	assert.Nil(t, model.Selected())
	assert.Nil(t, cmd)
}

func TestPicker_CtrlCCancels(t *testing.T) {
	model, _ := update(t, readyModel(t), tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Equal(t, StateDone, model.State())
	assert.True(t, model.Cancelled())
	assert.Nil(t, model.Selected())
}

func TestPicker_EscCancels(t *testing.T) {
	model, _ := update(t, readyModel(t), tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, StateDone, model.State())
	assert.True(t, model.Cancelled())
}

func TestPicker_EditOpensComposer(t *testing.T) {
	model := typeText(t, readyModel(t), "e")

	assert.Equal(t, StateComposing, model.State())
	assert.Equal(t, "See you at 5!", model.input.Value())
	assert.True(t, model.fromPicker)

	back, _ := update(t, model, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, StatePicking, back.State())
	assert.False(t, back.Cancelled())
}

func TestPicker_ViewLoading(t *testing.T) {
	m := NewPicker(testItems(), testStyle)

	assert.Equal(t, "Loading...", m.View())
}

func TestPicker_ViewAfterReady(t *testing.T) {
	view := readyModel(t).View()

	assert.Contains(t, view, "Recent messages")
	assert.Contains(t, view, "See you at 5!")
	assert.Contains(t, view, "Hello World")
}

// --- Composer ---

func TestComposer_InitialState(t *testing.T) {
	m := NewComposer("", testStyle)

	assert.Equal(t, StateComposing, m.State())
	assert.NotNil(t, m.Init())
	assert.Empty(t, m.Text())
	assert.Equal(t, inputPlaceholder, m.input.Placeholder)
}

func TestComposer_CtrlSShares(t *testing.T) {
	m := typeText(t, composerModel(t), "Hello World")

	model, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, StateDone, model.State())
	assert.Equal(t, "Hello World", model.Text())
	assert.False(t, model.Cancelled())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestComposer_BlankIsNotShared(t *testing.T) {
	m := typeText(t, composerModel(t), "   ")

	model, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, StateComposing, model.State())
	assert.Empty(t, model.Text())
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), hintBlank)

	model = typeText(t, model, "x")
	assert.NotContains(t, model.View(), hintBlank)
}

func TestComposer_MarkupIsShareable(t *testing.T) {
	m := typeText(t, composerModel(t), "<b></b>")

	model, _ := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, StateDone, model.State())
	assert.Equal(t, "<b></b>", model.Text(), "raw text is shared; the receiver sanitizes")
}

func TestComposer_CharLimit(t *testing.T) {
	m := typeText(t, composerModel(t), strings.Repeat("a", 200))

	assert.Equal(t, strings.Repeat("a", 140), m.input.Value())
	assert.Contains(t, m.View(), "140 / 140")
}

func TestComposer_EscCancels(t *testing.T) {
	model, _ := update(t, composerModel(t), tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, StateDone, model.State())
	assert.True(t, model.Cancelled())
	assert.Empty(t, model.Text())
}

func TestComposer_CtrlCCancels(t *testing.T) {
	m := typeText(t, composerModel(t), "hi")
	model, _ := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, model.Cancelled())
	assert.Empty(t, model.Text())
}

// previewSection returns the part of the composer view above the input.
func previewSection(t *testing.T, view string) string {
	t.Helper()

	start := strings.Index(view, "Live preview")
	end := strings.Index(view, inputLabel)
	require.GreaterOrEqual(t, start, 0, view)
	require.Greater(t, end, start, view)

	return view[start:end]
}

func TestComposer_ViewShowsLivePreview(t *testing.T) {
	m := composerModel(t)

	view := m.View()
	assert.Contains(t, previewSection(t, view), board.Placeholder)
	assert.NotContains(t, previewSection(t, view), "╭")
	assert.Contains(t, view, "0 / 140")
	assert.Contains(t, view, "Esc: cancel")

	m = typeText(t, m, "OK<i>")
	view = m.View()
	preview := previewSection(t, view)
	assert.NotContains(t, preview, board.Placeholder)
	assert.Contains(t, preview, "╭")
	assert.Contains(t, view, "5 / 140")
}

func TestComposer_UndisplayableTextKeepsPlaceholder(t *testing.T) {
	m := typeText(t, composerModel(t), "<b></b>")

	assert.Contains(t, previewSection(t, m.View()), board.Placeholder)
}

func TestComposer_Prefilled(t *testing.T) {
	m := NewComposer("again", testStyle)
	assert.Equal(t, "again", m.input.Value())
}

// --- Items ---

func TestHistoryItem(t *testing.T) {
	e := history.Entry{ID: "x", Message: "Hi <script>alert(1)</script>there", Timestamp: 1700000000000}
	item := NewHistoryItem(e)

	assert.Equal(t, "Hi there", item.Title())
	assert.Equal(t, "Hi there", item.FilterValue())
	assert.Equal(t, time.UnixMilli(1700000000000).Local().Format(timeLayout), item.Description())
	assert.Equal(t, e, item.Entry())
}

func TestHistoryItem_NothingDisplayable(t *testing.T) {
	item := NewHistoryItem(history.Entry{Message: "<p></p>"})
	assert.Equal(t, "(nothing displayable)", item.Title())
}

func TestHistoryItems_KeepsOrder(t *testing.T) {
	items := HistoryItems(testEntries())

	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].(HistoryItem).Entry().ID)
	assert.Equal(t, "a", items[1].(HistoryItem).Entry().ID)
}
