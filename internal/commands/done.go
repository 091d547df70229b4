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
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                   { return "done" }
func (c *DoneCmd) Aliases() []string              { return nil }
func (c *DoneCmd) Synopsis() string               { return "Mark a todo completed" }
func (c *DoneCmd) Usage() string                  { return "todoctl done <id>" }
func (c *DoneCmd) NeedsBackend() bool             { return true }
func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, gw, args, true, out, errOut)
}

// UndoneCmd clears the completed flag.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string                   { return "undone" }
func (c *UndoneCmd) Aliases() []string              { return []string{"reopen"} }
func (c *UndoneCmd) Synopsis() string               { return "Mark a todo not completed" }
func (c *UndoneCmd) Usage() string                  { return "todoctl undone <id>" }
func (c *UndoneCmd) NeedsBackend() bool             { return true }
func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, gw, args, false, out, errOut)
}

// runSetCompleted is the shared implementation for done and undone.
func runSetCompleted(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, completed bool, out, errOut io.Writer) int {
	id, rest, err := ParseTodoRef(args)
	if err != nil {
		return printRefError(errOut, err)
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	m := newModel(cfg, gw, errOut)
	todo, code := loadAndFind(ctx, m, id, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := m.SetCompleted(ctx, todo, completed).Wait(); err != nil {
		return exitCodeFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
