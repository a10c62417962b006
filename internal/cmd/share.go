package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/dedene/flipboard-cli/internal/actions"
	"github.com/dedene/flipboard-cli/internal/api"
	"github.com/dedene/flipboard-cli/internal/codec"
	"github.com/dedene/flipboard-cli/internal/config"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/preview"
	"github.com/dedene/flipboard-cli/internal/share"
	"github.com/dedene/flipboard-cli/internal/ui"
)

// ShareCmd builds a share link for a message.
type ShareCmd struct {
	Text string `arg:"" optional:"" help:"Message to share (reads stdin when omitted)"`

	Origin    string `help:"Origin the link points at (default from config)" name:"origin"`
	Copy      bool   `help:"Copy the link to the clipboard" name:"copy" short:"c"`
	Open      bool   `help:"Open the link in the browser" name:"open" short:"o"`
	NoHistory bool   `help:"Do not record the message in history" name:"no-history"`
	Preview   bool   `help:"Show the board preview on stderr" name:"preview" default:"true" negatable:""`
}

// shareFlags are the post-share options shared by share, compose and
// history pick.
type shareFlags struct {
	origin    string
	copy      bool
	open      bool
	noHistory bool
	noPreview bool
}

// shareResult is the JSON shape of a shared link.
type shareResult struct {
	URL     string `json:"url"`
	Token   string `json:"token"`
	Preview string `json:"preview"`
}

// Run executes the share command.
func (c *ShareCmd) Run(ctx context.Context, root *RootFlags) error {
	text, err := textArg(c.Text)
	if err != nil {
		return err
	}

	return shareMessage(ctx, root, text, shareFlags{
		origin:    c.Origin,
		copy:      c.Copy,
		open:      c.Open,
		noHistory: c.NoHistory,
		noPreview: !c.Preview,
	})
}

// shareMessage builds the link for text, prints it, records history and
// fires the clipboard/browser actions. Only building the link can fail.
func shareMessage(ctx context.Context, root *RootFlags, text string, f shareFlags) error {
	cfg := cfgFrom(ctx)

	link, token, err := buildLink(ctx, cfg, text, f.origin)
	if errors.Is(err, share.ErrBlankMessage) {
		return fmt.Errorf("nothing to share: %w", err)
	}
	if err != nil {
		return err
	}

	if !f.noPreview && shouldPreview(root) {
		st := boardStyle(ctx, true)
		if err := preview.Show(text, preview.Options{Writer: os.Stderr, Palette: st.Palette, Color: st.Color}); err != nil {
			warnf("preview: %v", err)
		}
	}

	res := shareResult{URL: link, Token: token, Preview: share.Preview(text)}
	if err := outfmt.Emit(ctx, os.Stdout, res, func() error {
		fmt.Fprintln(os.Stdout, link)
		return nil
	}); err != nil {
		return err
	}

	if !f.noHistory {
		recordHistory(ctx, text)
	}

	// Deliver logs its own failures; they never fail the share.
	delivered, _ := actions.Deliver(link, actions.Options{
		Copy: effectiveCopy(f.copy, cfg),
		Open: effectiveOpen(f.open, cfg),
	})

	if delivered.Copied && !outfmt.IsJSON(ctx) {
		if u := ui.FromContext(ctx); u != nil {
			u.Err().Successf("Copied!")
		}
	}

	return nil
}

// buildLink asks the remote server when one is configured (the server picks
// the origin), and builds the link locally otherwise.
func buildLink(ctx context.Context, cfg *config.Config, text, origin string) (link, token string, err error) {
	if client := api.ClientFromContext(ctx); client != nil {
		resp, err := client.Share(ctx, text)
		if err != nil {
			var apiErr *api.Error
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
				return "", "", share.ErrBlankMessage
			}

			return "", "", fmt.Errorf("remote %s: %w", client.BaseURL(), err)
		}

		return resp.URL, resp.Token, nil
	}

	if origin == "" {
		origin = cfg.Origin
	}

	link, err = share.BuildURL(origin, text)
	if err != nil {
		return "", "", err
	}

	return link, codec.Encode(text), nil
}

// shouldPreview reports whether the board preview may be drawn: only when
// stderr is a TTY and neither --no-input nor --json is set.
func shouldPreview(root *RootFlags) bool {
	if !stderrIsTerminal() {
		return false
	}

	return root == nil || (!root.NoInput && !root.JSON)
}

// effectiveCopy returns: explicit --copy flag > config auto_copy > false.
func effectiveCopy(flag bool, cfg *config.Config) bool {
	if flag {
		return true
	}

	return cfg != nil && cfg.AutoCopy != nil && *cfg.AutoCopy
}

// effectiveOpen returns: explicit --open flag > config auto_open > false.
func effectiveOpen(flag bool, cfg *config.Config) bool {
	if flag {
		return true
	}

	return cfg != nil && cfg.AutoOpen != nil && *cfg.AutoOpen
}
