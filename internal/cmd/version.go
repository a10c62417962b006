package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/dedene/flipboard-cli/internal/outfmt"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// readBuildInfo is swappable in tests.
var readBuildInfo = debug.ReadBuildInfo

// buildVersion returns the release version, falling back to the module
// version recorded by "go install".
func buildVersion() string {
	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		return v
	}

	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}

	return "dev"
}

// VersionString returns a human-readable version string.
func VersionString() string {
	v := buildVersion()

	var extra []string
	if c := strings.TrimSpace(commit); c != "" {
		extra = append(extra, c)
	}
	if d := strings.TrimSpace(date); d != "" {
		extra = append(extra, d)
	}

	if len(extra) == 0 {
		return v
	}

	return fmt.Sprintf("%s (%s)", v, strings.Join(extra, " "))
}

// versionInfo is the JSON shape of "flipboard version".
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	info := versionInfo{
		Version: buildVersion(),
		Commit:  strings.TrimSpace(commit),
		Date:    strings.TrimSpace(date),
		Go:      runtime.Version(),
	}

	return outfmt.Emit(ctx, os.Stdout, info, func() error {
		fmt.Fprintf(os.Stdout, "flipboard %s\n", VersionString())
		if info.Commit != "" {
			fmt.Fprintf(os.Stdout, "  commit: %s\n", info.Commit)
		}
		if info.Date != "" {
			fmt.Fprintf(os.Stdout, "  date:   %s\n", info.Date)
		}
		fmt.Fprintf(os.Stdout, "  go:     %s\n", info.Go)

		return nil
	})
}
