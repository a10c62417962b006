package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dedene/flipboard-cli/internal/api"
	"github.com/dedene/flipboard-cli/internal/codec"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/sanitize"
)

// textOp is one of the pure text operations, run locally or on the remote
// server.
type textOp struct {
	local  func(string) string
	remote func(*api.Client, context.Context, string) (string, error)
}

var (
	encodeOp = textOp{
		local:  codec.Encode,
		remote: (*api.Client).Encode,
	}
	decodeOp = textOp{
		local:  codec.DecodeString,
		remote: (*api.Client).Decode,
	}
	sanitizeOp = textOp{
		local:  sanitize.String,
		remote: (*api.Client).Sanitize,
	}
)

func (op textOp) run(ctx context.Context, text string) (string, error) {
	if client := api.ClientFromContext(ctx); client != nil {
		out, err := op.remote(client, ctx, text)
		if err != nil {
			return "", fmt.Errorf("remote %s: %w", client.BaseURL(), err)
		}

		return out, nil
	}

	return op.local(text), nil
}

// runTextOp reads the input, applies op and prints the result.
func runTextOp(ctx context.Context, arg string, op textOp, show func(string) string) error {
	text, err := textArg(arg)
	if err != nil {
		return err
	}

	out, err := op.run(ctx, text)
	if err != nil {
		return err
	}

	return outfmt.Emit(ctx, os.Stdout, outfmt.Result{Input: text, Result: out}, func() error {
		fmt.Fprintln(os.Stdout, show(out))
		return nil
	})
}

func asIs(s string) string { return s }

// EncodeCmd prints the transport token for a message.
type EncodeCmd struct {
	Text string `arg:"" optional:"" help:"Message to encode (reads stdin when omitted)"`
}

// Run executes the encode command.
func (c *EncodeCmd) Run(ctx context.Context) error {
	return runTextOp(ctx, c.Text, encodeOp, asIs)
}

// DecodeCmd prints the message carried by a token. Malformed tokens decode
// to an empty line.
type DecodeCmd struct {
	Token string `arg:"" optional:"" help:"Token to decode (reads stdin when omitted)"`
}

// Run executes the decode command.
func (c *DecodeCmd) Run(ctx context.Context) error {
	return runTextOp(ctx, c.Token, decodeOp, printable)
}

// SanitizeCmd prints the display-safe form of a message.
type SanitizeCmd struct {
	Text string `arg:"" optional:"" help:"Text to sanitize (reads stdin when omitted)"`
}

// Run executes the sanitize command.
func (c *SanitizeCmd) Run(ctx context.Context) error {
	return runTextOp(ctx, c.Text, sanitizeOp, asIs)
}
