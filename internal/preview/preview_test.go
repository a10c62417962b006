package preview

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedene/flipboard-cli/internal/board"
)

func stubWidth(t *testing.T, w int, err error) {
	t.Helper()

	orig := TerminalWidth
	t.Cleanup(func() { TerminalWidth = orig })

	TerminalWidth = func(int) (int, error) { return w, err }
}

func TestShow_ExplicitWidth(t *testing.T) {
	var out bytes.Buffer
	err := Show("HELLO", Options{Width: 9, Writer: &out})
	require.NoError(t, err)

	assert.Equal(t, 6, lipgloss.Height(out.String())-1, "two rows plus trailing newline")
	assert.Contains(t, out.String(), "H")
}

func TestShow_DetectsTerminalWidth(t *testing.T) {
	stubWidth(t, 6, nil)

	var out bytes.Buffer
	require.NoError(t, Show("ABCD", Options{Writer: &out}))
	assert.Equal(t, 6, lipgloss.Width(out.String()))
}

func TestShow_WidthFallback(t *testing.T) {
	stubWidth(t, 0, errors.New("not a terminal"))
	assert.Equal(t, defaultWidth, detectWidth())

	stubWidth(t, 500, nil)
	assert.Equal(t, maxWidth, detectWidth())
}

func TestShow_Placeholder(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Show("<i></i>", Options{Width: 40, Writer: &out}))
	assert.Equal(t, board.Placeholder+"\n", out.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestShow_WriteError(t *testing.T) {
	err := Show("HI", Options{Width: 40, Writer: failWriter{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing preview")
}
