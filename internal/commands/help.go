package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todoctl help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoctl                                  List all todos
  todoctl list [common flags] [--open]     List todos, optionally only open ones
  todoctl add [common flags] [--done] <title...>
  todoctl done [common flags] <id>
  todoctl undone [common flags] <id>
  todoctl rename [common flags] <id> <title...>
  todoctl rm [common flags] [--yes] <id>
  todoctl tui [common flags]               Interactive table with add/edit dialogs
  todoctl mcp [common flags]               Serve todo tools over MCP stdio
  todoctl help
  todoctl version

Ids above 200 are local-only: edits to them are never sent to the server.

Common flags:
  --config <dir>     Override config directory
  --endpoint <url>   Override the todo collection URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
