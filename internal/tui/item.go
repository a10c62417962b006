// Package tui provides the interactive Bubbletea composer and history picker.
package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/dedene/flipboard-cli/internal/history"
	"github.com/dedene/flipboard-cli/internal/sanitize"
)

const timeLayout = "2006-01-02 15:04"

// HistoryItem wraps history.Entry to implement the bubbles list.DefaultItem
// interface. Stored messages are raw, so titles are sanitized before they
// reach the terminal.
type HistoryItem struct {
	entry history.Entry
}

// NewHistoryItem creates a HistoryItem from a history.Entry.
func NewHistoryItem(e history.Entry) HistoryItem {
	return HistoryItem{entry: e}
}

// HistoryItems converts a log into list items, keeping its order.
func HistoryItems(entries []history.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = NewHistoryItem(e)
	}

	return items
}

// Title returns the display-safe message.
func (i HistoryItem) Title() string {
	safe := sanitize.String(i.entry.Message)
	if sanitize.IsBlank(safe) {
		return "(nothing displayable)"
	}

	return safe
}

// Description returns when the message was shared.
func (i HistoryItem) Description() string {
	return i.entry.Time().Local().Format(timeLayout)
}

// FilterValue returns the display-safe message for fuzzy matching.
func (i HistoryItem) FilterValue() string { return sanitize.String(i.entry.Message) }

// Entry returns the wrapped history.Entry.
func (i HistoryItem) Entry() history.Entry { return i.entry }
