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
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command through the edit dialog flow.
type RenameCmd struct{}

func (c *RenameCmd) Name() string                   { return "rename" }
func (c *RenameCmd) Aliases() []string              { return []string{"edit"} }
func (c *RenameCmd) Synopsis() string               { return "Change a todo's title" }
func (c *RenameCmd) Usage() string                  { return "todoctl rename <id> <title...>" }
func (c *RenameCmd) NeedsBackend() bool             { return true }
func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	id, rest, err := ParseTodoRef(args)
	if err != nil {
		return printRefError(errOut, err)
	}
	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := strings.Join(rest, " ")

	m := newModel(cfg, gw, errOut)
	todo, code := loadAndFind(ctx, m, id, errOut)
	if code != exitcode.Success {
		return code
	}

	m.OpenEdit(todo)
	m.Stage(title, todo.Completed)
	if err := m.SetTitle(ctx, title).Wait(); err != nil {
		return exitCodeFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
