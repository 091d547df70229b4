package commands

import (
	"context"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todoctl` (no args) and `todoctl list`.
type ListCmd struct {
	openOnly bool
}

// SetOpenOnly hides completed todos (for testing).
func (c *ListCmd) SetOpenOnly(v bool) {
	c.openOnly = v
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List todos" }
func (c *ListCmd) Usage() string      { return "todoctl list [--open]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	m := newModel(cfg, gw, errOut)
	if err := m.Load(ctx).Wait(); err != nil {
		return exitCodeFor(err)
	}

	todos := m.Todos()
	if c.openOnly {
		open := todos[:0]
		for _, t := range todos {
			if !t.Completed {
				open = append(open, t)
			}
		}
		todos = open
	}

	output.FormatTodos(out, todos, cfg.Quiet)
	return exitcode.Success
}
