package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/todolist"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version" }
func (c *VersionCmd) Usage() string      { return "todoctl version [--debug]" }
func (c *VersionCmd) NeedsBackend() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "todoctl %s\n", Version)
	if cfg.Debug {
		fmt.Fprintf(out, "endpoint: %s\n", cfg.Endpoint)
		fmt.Fprintf(out, "config:   %s\n", cfg.Path())
		fmt.Fprintf(out, "timeout:  %s\n", describeTimeout(cfg.Timeout()))
		fmt.Fprintf(out, "local ids: > %d\n", todolist.LocalIDThreshold)
	}
	return exitcode.Success
}

func describeTimeout(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}
