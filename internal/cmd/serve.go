package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dedene/flipboard-cli/internal/server"
)

// ServeCmd serves the flip-board page and JSON API.
type ServeCmd struct {
	Addr   string `help:"Listen address" default:"localhost:8080" env:"FLIPBOARD_ADDR"`
	Origin string `help:"Origin used in share links (default from config, then the listen address)"`
}

// Run serves until interrupted.
func (c *ServeCmd) Run(ctx context.Context) error {
	origin := c.Origin
	if origin == "" {
		origin = cfgFrom(ctx).Origin
	}

	srv, err := server.New(server.Options{Addr: c.Addr, Origin: origin})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", srv.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.Addr(), err)
	}

	fmt.Fprintf(os.Stderr, "Serving on http://%s (Ctrl+C to stop)\n", ln.Addr())

	return srv.Serve(ctx, ln)
}
