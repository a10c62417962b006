package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/dedene/flipboard-cli/internal/board"
	"github.com/dedene/flipboard-cli/internal/config"
	"github.com/dedene/flipboard-cli/internal/history"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/ui"
)

// Terminal checks, swappable in tests.
var (
	stdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	stdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
	stderrIsTerminal = func() bool { return isatty.IsTerminal(os.Stderr.Fd()) }
)

// stdin is read when a text argument is omitted (swappable in tests).
var stdin io.Reader = os.Stdin

// cfgFrom returns the context config, never nil.
func cfgFrom(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}

	return &config.Config{}
}

// textArg returns arg, or piped stdin when arg is empty. A single trailing
// newline from stdin is dropped.
func textArg(arg string) (string, error) {
	if arg != "" || stdinIsTerminal() {
		return arg, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	s := strings.TrimSuffix(string(data), "\n")

	return strings.TrimSuffix(s, "\r"), nil
}

// boardStyle derives board colors from the context UI.
func boardStyle(ctx context.Context, toStderr bool) board.Style {
	st := board.Style{Palette: ui.ThemeLight.Palette()}

	u := ui.FromContext(ctx)
	if u == nil {
		return st
	}

	st.Palette = u.Theme().Palette()
	if toStderr {
		st.Color = u.Err().ColorEnabled()
	} else {
		st.Color = u.Out().ColorEnabled()
	}

	return st
}

// openHistory opens the configured history log. The returned func closes
// the underlying store.
func openHistory(ctx context.Context) (*history.Log, func(), error) {
	opts, err := cfgFrom(ctx).HistoryOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving history location: %w", err)
	}

	store, err := history.Open(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}

	closeFn := func() {
		if err := store.Close(); err != nil {
			warnf("closing history: %v", err)
		}
	}

	return history.NewLog(store, history.LogOptions{}), closeFn, nil
}

// recordHistory appends text to the history log. Failures are warnings.
func recordHistory(ctx context.Context, text string) {
	log, closeFn, err := openHistory(ctx)
	if err != nil {
		warnf("history: %v", err)
		return
	}
	defer closeFn()

	if _, err := log.Append(ctx, text); err != nil && !errors.Is(err, history.ErrEmptyMessage) {
		warnf("history: %v", err)
	}
}

// warnf writes a non-fatal warning to stderr.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// printable replaces control characters other than newline and tab, so
// decoded text cannot drive the terminal.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}

		return unicode.ReplacementChar
	}, s)
}

// runProgram runs a bubbletea model drawing to out (swappable in tests).
var runProgram = func(m tea.Model, out io.Writer) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithOutput(out), tea.WithInputTTY()).Run()
}

// interactive reports whether a prompt or TUI may be shown on the terminal
// behind w.
func interactive(ctx context.Context, root *RootFlags, toStderr bool) bool {
	if root != nil && root.NoInput {
		return false
	}

	if outfmt.IsJSON(ctx) {
		return false
	}

	if toStderr {
		return stderrIsTerminal()
	}

	return stdoutIsTerminal()
}
