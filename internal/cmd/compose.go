package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dedene/flipboard-cli/internal/tui"
)

// ComposeCmd opens the composer with a live board preview, then shares the
// message.
type ComposeCmd struct {
	Text string `arg:"" optional:"" help:"Initial draft"`

	Origin    string `help:"Origin the link points at (default from config)" name:"origin"`
	Copy      bool   `help:"Copy the link to the clipboard" name:"copy" short:"c"`
	Open      bool   `help:"Open the link in the browser" name:"open" short:"o"`
	NoHistory bool   `help:"Do not record the message in history" name:"no-history"`
}

// Run executes the compose command.
func (c *ComposeCmd) Run(ctx context.Context, root *RootFlags) error {
	if !interactive(ctx, root, true) {
		return errors.New("compose needs an interactive terminal; use \"flipboard share\" instead")
	}

	return composeAndShare(ctx, root, c.Text, shareFlags{
		origin:    c.Origin,
		copy:      c.Copy,
		open:      c.Open,
		noHistory: c.NoHistory,
	})
}

// composeAndShare runs the composer and shares what was submitted.
// Cancelling is not an error.
func composeAndShare(ctx context.Context, root *RootFlags, draft string, f shareFlags) error {
	result, err := runProgram(tui.NewComposer(draft, boardStyle(ctx, true)), os.Stderr)
	if err != nil {
		return fmt.Errorf("composer: %w", err)
	}

	m, ok := result.(tui.Model)
	if !ok {
		return errors.New("unexpected composer result type")
	}

	if m.Cancelled() || m.Text() == "" {
		return nil
	}

	// The composer already showed the board.
	f.noPreview = true

	return shareMessage(ctx, root, m.Text(), f)
}
