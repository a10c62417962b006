package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dedene/flipboard-cli/internal/actions"
	"github.com/dedene/flipboard-cli/internal/board"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/preview"
	"github.com/dedene/flipboard-cli/internal/share"
)

// ShowCmd displays the message carried by a share link.
type ShowCmd struct {
	Link string `arg:"" optional:"" help:"Share link, query string or bare token (reads stdin when omitted)"`

	Paste     bool `help:"Read the link from the clipboard" name:"paste" short:"p"`
	NoAnimate bool `help:"Print the settled board without the flip animation" name:"no-animate"`
	NoHistory bool `help:"Do not record a message composed as fallback" name:"no-history"`
}

// showResult is the JSON shape of a shown message.
type showResult struct {
	Message string `json:"message"`
}

// Run executes the show command.
func (c *ShowCmd) Run(ctx context.Context, root *RootFlags) error {
	link, err := c.readLink()
	if err != nil {
		return err
	}

	safe, ok := share.ReceiveURL(link)
	if !ok {
		if interactive(ctx, root, true) {
			return composeAndShare(ctx, root, "", shareFlags{noHistory: c.NoHistory})
		}

		return &ExitError{Code: ExitNoMessage, Err: errNoMessage}
	}

	if outfmt.IsJSON(ctx) {
		return outfmt.WriteJSON(os.Stdout, showResult{Message: safe})
	}

	return displayBoard(ctx, root, safe, !c.NoAnimate)
}

func (c *ShowCmd) readLink() (string, error) {
	if c.Link != "" || !c.Paste {
		return textArg(c.Link)
	}

	link, err := actions.PasteFromClipboard()
	if err != nil {
		return "", fmt.Errorf("reading link from clipboard: %w", err)
	}

	return link, nil
}

// displayBoard prints safe on stdout: animated on a terminal, as a settled
// board with --no-animate, and as plain text when piped.
func displayBoard(ctx context.Context, root *RootFlags, safe string, animate bool) error {
	if !interactive(ctx, root, false) {
		_, err := fmt.Fprintln(os.Stdout, safe)
		return err
	}

	st := boardStyle(ctx, false)
	if w, err := preview.TerminalWidth(int(os.Stdout.Fd())); err == nil {
		st.Width = w
	}

	cfg := cfgFrom(ctx)
	if !animate || (cfg.Animate != nil && !*cfg.Animate) {
		_, err := fmt.Fprintln(os.Stdout, board.Render(safe, st))
		return err
	}

	if _, err := runProgram(board.NewModel(safe, st), os.Stdout); err != nil {
		return fmt.Errorf("board animation: %w", err)
	}

	return nil
}
