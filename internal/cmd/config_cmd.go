package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/dedene/flipboard-cli/internal/config"
	"github.com/dedene/flipboard-cli/internal/outfmt"
	"github.com/dedene/flipboard-cli/internal/ui"
)

const unsetValue = "(unset)"

// ConfigCmd groups configuration subcommands.
type ConfigCmd struct {
	Path  ConfigPathCmd  `cmd:"" help:"Show config and history locations"`
	List  ConfigListCmd  `cmd:"" default:"1" help:"List all config values"`
	Get   ConfigGetCmd   `cmd:"" help:"Get a config value"`
	Set   ConfigSetCmd   `cmd:"" help:"Set a config value"`
	Unset ConfigUnsetCmd `cmd:"" help:"Unset a config value"`
}

// ConfigPathCmd prints where flipboard keeps its files.
type ConfigPathCmd struct{}

type configPaths struct {
	Config  string `json:"config"`
	History string `json:"history"`
}

// Run prints the config file path, and the history location on stderr.
func (c *ConfigPathCmd) Run(ctx context.Context) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	opts, err := cfgFrom(ctx).HistoryOptions()
	if err != nil {
		return err
	}

	historyAt := opts.Dir
	if historyAt == "" {
		historyAt = opts.Backend
	}

	return outfmt.Emit(ctx, os.Stdout, configPaths{Config: path, History: historyAt}, func() error {
		fmt.Fprintln(os.Stdout, path)
		fmt.Fprintf(os.Stderr, "history: %s\n", historyAt)
		return nil
	})
}

// ConfigListCmd lists all config values.
type ConfigListCmd struct{}

// Run lists every known key with its value.
func (c *ConfigListCmd) Run(ctx context.Context) error {
	cfg := cfgFrom(ctx)

	if outfmt.IsJSON(ctx) {
		return outfmt.WriteJSON(os.Stdout, cfg)
	}

	rows := lo.Map(config.KnownKeys(), func(key string, _ int) []string {
		val, ok := cfg.Get(key)
		if !ok {
			val = unsetValue
		}

		return []string{key, val}
	})

	color := false
	theme := ui.ThemeLight
	if u := ui.FromContext(ctx); u != nil {
		color = u.Out().ColorEnabled()
		theme = u.Theme()
	}

	fmt.Fprintln(os.Stdout, ui.RenderTable([]string{"Key", "Value"}, rows, color, theme))

	return nil
}

// ConfigGetCmd gets a single config value.
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get"`
}

// Run prints the value for the given key.
func (c *ConfigGetCmd) Run(ctx context.Context) error {
	if !lo.Contains(config.KnownKeys(), c.Key) {
		return fmt.Errorf("unknown config key: %s", c.Key)
	}

	val, ok := cfgFrom(ctx).Get(c.Key)
	if !ok {
		val = unsetValue
	}

	fmt.Fprintln(os.Stdout, val)

	return nil
}

// ConfigSetCmd sets a config value.
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key"`
	Value string `arg:"" help:"Config value"`
}

// Run sets a config key to a value, persisting to disk.
func (c *ConfigSetCmd) Run(ctx context.Context) error {
	err := updateConfig(func(cfg *config.Config) error {
		return cfg.Set(c.Key, c.Value)
	})
	if err != nil {
		return err
	}

	notify(ctx, fmt.Sprintf("Set %s = %s", c.Key, c.Value))

	return nil
}

// ConfigUnsetCmd removes a config value.
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to unset"`
}

// Run unsets a config key, persisting to disk.
func (c *ConfigUnsetCmd) Run(ctx context.Context) error {
	err := updateConfig(func(cfg *config.Config) error {
		return cfg.Unset(c.Key)
	})
	if err != nil {
		return err
	}

	notify(ctx, "Unset "+c.Key)

	return nil
}

// updateConfig loads the config file, applies fn and saves the result.
// Environment overrides are not applied, so they never end up on disk.
func updateConfig(fn func(*config.Config) error) error {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := fn(cfg); err != nil {
		return err
	}

	return config.Save(cfgPath, cfg)
}

func notify(ctx context.Context, msg string) {
	if u := ui.FromContext(ctx); u != nil {
		u.Err().Successf("%s", msg)
		return
	}

	fmt.Fprintln(os.Stderr, msg)
}
