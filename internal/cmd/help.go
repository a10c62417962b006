package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"
)

func helpOptions() kong.HelpOptions {
	return kong.HelpOptions{
		Compact:        true,
		WrapUpperBound: 100,
	}
}

const examples = `
Examples:
  flipboard share "See you at 5!" --copy
  flipboard show "http://localhost:8080/?m=U2VlIHlvdSBhdCA1IQ=="
  flipboard compose
  echo "Hello" | flipboard encode
  flipboard serve --addr :8080`

// helpPrinter prints kong's default help, plus examples on the top-level
// page.
func helpPrinter(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	if ctx.Selected() == nil {
		_, _ = fmt.Fprintln(ctx.Stdout, examples)
	}

	return nil
}
