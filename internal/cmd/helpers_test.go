package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/dedene/flipboard-cli/internal/actions"
	"github.com/dedene/flipboard-cli/internal/api"
	"github.com/dedene/flipboard-cli/internal/config"
	"github.com/dedene/flipboard-cli/internal/outfmt"
)

// testCtx returns a context with the given config and output mode and no
// UI, so output is uncolored.
func testCtx(t *testing.T, cfg *config.Config, jsonMode bool) context.Context {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}

	ctx := context.Background()
	ctx = outfmt.WithMode(ctx, outfmt.Mode{JSON: jsonMode})
	ctx = config.WithConfig(ctx, cfg)

	return ctx
}

// remoteCtx adds an API client pointing at baseURL.
func remoteCtx(t *testing.T, baseURL string, jsonMode bool) context.Context {
	t.Helper()

	client := api.NewClient(api.ClientOptions{
		BaseURL:   baseURL,
		UserAgent: "flipboard-cli/test",
	})

	return api.WithClient(testCtx(t, nil, jsonMode), client)
}

// isolate points config and history at temp dirs.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

// setTerminals fakes which standard streams are terminals.
func setTerminals(t *testing.T, in, out, errOut bool) {
	t.Helper()

	origIn, origOut, origErr := stdinIsTerminal, stdoutIsTerminal, stderrIsTerminal
	t.Cleanup(func() {
		stdinIsTerminal, stdoutIsTerminal, stderrIsTerminal = origIn, origOut, origErr
	})

	stdinIsTerminal = func() bool { return in }
	stdoutIsTerminal = func() bool { return out }
	stderrIsTerminal = func() bool { return errOut }
}

// setStdin replaces piped stdin with s.
func setStdin(t *testing.T, s string) {
	t.Helper()

	orig := stdin
	t.Cleanup(func() { stdin = orig })

	stdin = strings.NewReader(s)
}

// stubProgram replaces the bubbletea runner. fn gets the initial model
// and returns the final one.
func stubProgram(t *testing.T, fn func(tea.Model) tea.Model) {
	t.Helper()

	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model, _ io.Writer) (tea.Model, error) {
		return fn(m), nil
	}
}

// stubDesktop records clipboard writes and browser opens.
func stubDesktop(t *testing.T, clip string) (copied *string, opened *string) {
	t.Helper()

	origWrite, origRead := actions.ClipboardWrite, actions.ClipboardRead
	origUnsupported, origOpen := actions.ClipboardUnsupported, actions.BrowserOpen
	t.Cleanup(func() {
		actions.ClipboardWrite, actions.ClipboardRead = origWrite, origRead
		actions.ClipboardUnsupported, actions.BrowserOpen = origUnsupported, origOpen
	})

	var c, o string
	actions.ClipboardUnsupported = false
	actions.ClipboardWrite = func(text string) error {
		c = text
		return nil
	}
	actions.ClipboardRead = func() (string, error) { return clip, nil }
	actions.BrowserOpen = func(url string) error {
		o = url
		return nil
	}

	return &c, &o
}

// captureStdout runs fn while capturing os.Stdout and returns the output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStdout := os.Stdout
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	buf, _ := io.ReadAll(r)
	_ = r.Close()

	return string(buf)
}

// captureStderr is captureStdout for os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStderr := os.Stderr
	os.Stderr = w

	fn()

	_ = w.Close()
	os.Stderr = origStderr

	buf, _ := io.ReadAll(r)
	_ = r.Close()

	return string(buf)
}

func boolPtr(b bool) *bool { return &b }
