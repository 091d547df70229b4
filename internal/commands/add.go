package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	completed bool
}

// SetCompleted marks the new todo as done (for testing).
func (c *AddCmd) SetCompleted(v bool) {
	c.completed = v
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a todo" }
func (c *AddCmd) Usage() string      { return "todoctl add [--done] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.completed, "done", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := strings.Join(args, " ")

	m := newModel(cfg, gw, errOut)
	// Local ids continue from the last loaded record.
	if err := m.Load(ctx).Wait(); err != nil {
		return exitCodeFor(err)
	}

	m.OpenAdd()
	m.Stage(title, c.completed)
	if err := m.Add(ctx, title, c.completed).Wait(); err != nil {
		return exitCodeFor(err)
	}

	if !cfg.Quiet {
		todos := m.Todos()
		fmt.Fprintf(out, "ok %d\n", todos[len(todos)-1].ID)
	}
	return exitcode.Success
}
