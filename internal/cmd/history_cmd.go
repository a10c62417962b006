package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/dedene/flipboard-cli/internal/history"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/sanitize"
	"github.com/dedene/flipboard-cli/internal/tui"
	"github.com/dedene/flipboard-cli/internal/ui"
)

// HistoryCmd groups history subcommands. "flipboard history" lists.
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" default:"1" help:"List recently shared messages"`
	Pick  HistoryPickCmd  `cmd:"" help:"Pick a recent message to show or reshare"`
	Clear HistoryClearCmd `cmd:"" help:"Forget all recently shared messages"`
}

// HistoryListCmd prints the history log.
type HistoryListCmd struct{}

// Run lists history entries, newest first.
func (c *HistoryListCmd) Run(ctx context.Context, root *RootFlags) error {
	entries, err := loadHistory(ctx)
	if err != nil {
		return err
	}

	if outfmt.IsJSON(ctx) {
		return outfmt.WriteJSON(os.Stdout, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No messages shared yet.")
		return nil
	}

	rows := lo.Map(entries, func(e history.Entry, i int) []string {
		return []string{
			strconv.Itoa(i + 1),
			printable(sanitize.String(e.Message)),
			e.Time().Local().Format("2006-01-02 15:04"),
		}
	})

	color := false
	theme := ui.ThemeLight
	if u := ui.FromContext(ctx); u != nil {
		color = u.Out().ColorEnabled()
		theme = u.Theme()
	}

	fmt.Fprintln(os.Stdout, ui.RenderTable([]string{"#", "Message", "Shared"}, rows, color, theme))

	return nil
}

// HistoryClearCmd empties the history log.
type HistoryClearCmd struct{}

// Run clears history after confirmation. --force skips the prompt.
func (c *HistoryClearCmd) Run(ctx context.Context, root *RootFlags) error {
	log, closeFn, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if !root.Force {
		if root.NoInput || !stdinIsTerminal() {
			return errors.New("refusing to clear history without confirmation; pass --force")
		}

		ok, err := confirm("Forget all recently shared messages?")
		if err != nil {
			return err
		}

		if !ok {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	if err := log.Clear(ctx); err != nil {
		return err
	}

	if u := ui.FromContext(ctx); u != nil {
		u.Err().Successf("History cleared.")
	}

	return nil
}

// HistoryPickCmd opens the interactive history picker.
type HistoryPickCmd struct {
	NoAnimate bool `help:"Print the settled board without the flip animation" name:"no-animate"`
}

// Run shows the picked message, or shares it once edited.
func (c *HistoryPickCmd) Run(ctx context.Context, root *RootFlags) error {
	if !interactive(ctx, root, true) {
		return errors.New("history pick needs an interactive terminal; use \"flipboard history list\"")
	}

	entries, err := loadHistory(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No messages shared yet.")
		return nil
	}

	result, err := runProgram(tui.NewPicker(tui.HistoryItems(entries), boardStyle(ctx, true)), os.Stderr)
	if err != nil {
		return fmt.Errorf("interactive picker: %w", err)
	}

	picker, ok := result.(tui.Model)
	if !ok {
		return errors.New("unexpected picker result type")
	}

	switch {
	case picker.Cancelled():
		return nil
	case picker.Text() != "":
		return shareMessage(ctx, root, picker.Text(), shareFlags{noPreview: true})
	case picker.Selected() != nil:
		safe := sanitize.String(picker.Selected().Message)
		if sanitize.IsBlank(safe) {
			return &ExitError{Code: ExitNoMessage, Err: errNoMessage}
		}

		return displayBoard(ctx, root, safe, !c.NoAnimate)
	}

	return nil
}

func loadHistory(ctx context.Context) ([]history.Entry, error) {
	log, closeFn, err := openHistory(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return log.List(ctx)
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
func confirm(question string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}

	return false, nil
}
