package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dedene/flipboard-cli/internal/api"
	"github.com/dedene/flipboard-cli/internal/config"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/ui"
)

// RootFlags are global flags available to all commands.
type RootFlags struct {
	Color   string `help:"Color output: auto|always|never" default:"auto" enum:"auto,always,never"`
	Theme   string `help:"Board theme: auto|light|dark (default from config, then auto)"`
	JSON    bool   `help:"JSON output" default:"false"`
	Verbose bool   `help:"Verbose logging" default:"false"`
	NoInput bool   `help:"Never prompt; fail instead" name:"no-input" default:"false"`
	Force   bool   `help:"Skip confirmations" default:"false"`
	Remote  string `help:"Run encode/decode/sanitize/share on a flipboard server at this URL" env:"FLIPBOARD_REMOTE"`
}

// CLI is the top-level Kong command struct.
type CLI struct {
	RootFlags `embed:""`

	Version    kong.VersionFlag `help:"Print version and exit"`
	VersionCmd VersionCmd       `cmd:"" name:"version" help:"Print version info"`
	Share      ShareCmd         `cmd:"" name:"share" help:"Build a share link for a message"`
	Show       ShowCmd          `cmd:"" name:"show" aliases:"open" help:"Show the message carried by a share link"`
	Compose    ComposeCmd       `cmd:"" name:"compose" aliases:"new" help:"Compose a message with a live preview"`
	Encode     EncodeCmd        `cmd:"" name:"encode" help:"Encode text into a transport token"`
	Decode     DecodeCmd        `cmd:"" name:"decode" help:"Decode a transport token"`
	Sanitize   SanitizeCmd      `cmd:"" name:"sanitize" help:"Print the display-safe form of text"`
	History    HistoryCmd       `cmd:"" name:"history" help:"Recently shared messages"`
	Config     ConfigCmd        `cmd:"" name:"config" help:"Manage configuration"`
	Serve      ServeCmd         `cmd:"" name:"serve" help:"Serve the flip-board page and JSON API"`
}

// Execute parses CLI args, sets up context, and runs the matched command.
func Execute(args []string) (err error) {
	cli := &CLI{}
	parser, err := kong.New(
		cli,
		kong.Name("flipboard"),
		kong.Description("Share short messages as links and show them on a flip board"),
		kong.ConfigureHelp(helpOptions()),
		kong.Help(helpPrinter),
		kong.Vars{"version": VersionString()},
		kong.Writers(os.Stdout, os.Stderr),
		kong.Exit(func(code int) { panic(exitPanic{code: code}) }),
	)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if ep, ok := r.(exitPanic); ok {
				if ep.code == 0 {
					err = nil
					return
				}
				err = &ExitError{Code: ep.code}
				return
			}
			panic(r)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	// Verbose logging
	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx, err := setupContext(context.Background(), &cli.RootFlags)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	// Bind context + root flags to Kong
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(&cli.RootFlags)

	return kctx.Run()
}

// setupContext loads config and attaches config, output mode, UI and the
// optional remote client to ctx.
func setupContext(ctx context.Context, root *RootFlags) (context.Context, error) {
	// Config: file, then FLIPBOARD_* overrides. A broken file is not fatal.
	cfgPath, _ := config.ConfigPath()
	cfg, cfgErr := config.Load(cfgPath)
	if cfgErr != nil {
		slog.Warn("loading config", "error", cfgErr)
		cfg = &config.Config{}
	}
	if envErr := cfg.ApplyEnv(); envErr != nil {
		slog.Warn("ignoring environment overrides", "error", envErr)
	}
	ctx = config.WithConfig(ctx, cfg)

	// Output mode
	ctx = outfmt.WithMode(ctx, outfmt.Mode{JSON: root.JSON})

	// UI printer -- force no color in JSON mode
	uiColor := root.Color
	if root.JSON {
		uiColor = "never"
	}
	theme := root.Theme
	if theme == "" {
		theme = cfg.Theme
	}
	u, err := ui.New(ui.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Color:  uiColor,
		Theme:  theme,
	})
	if err != nil {
		return nil, err
	}
	ctx = ui.WithUI(ctx, u)

	// Remote client, only when asked for.
	if root.Remote != "" {
		client := api.NewClient(api.ClientOptions{
			BaseURL:   root.Remote,
			Verbose:   root.Verbose,
			UserAgent: "flipboard-cli/" + buildVersion(),
		})
		ctx = api.WithClient(ctx, client)
	}

	return ctx, nil
}
