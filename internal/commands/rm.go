package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/todolist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
	in  io.Reader
}

// SetInput sets where the confirmation answer is read from (for testing).
func (c *RmCmd) SetInput(r io.Reader) {
	c.in = r
}

// SetYes skips the confirmation prompt (for testing).
func (c *RmCmd) SetYes(v bool) {
	c.yes = v
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a todo" }
func (c *RmCmd) Usage() string      { return "todoctl rm [--yes] <id>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	id, rest, err := ParseTodoRef(args)
	if err != nil {
		return printRefError(errOut, err)
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	var confirm todolist.Confirmer = todolist.AcceptAll
	if !c.yes {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		confirm = promptConfirmer(in, errOut)
	}

	m := newModel(cfg, gw, errOut, todolist.WithConfirmer(confirm))
	if _, code := loadAndFind(ctx, m, id, errOut); code != exitcode.Success {
		return code
	}

	if err := m.Delete(ctx, id).Wait(); err != nil {
		if errors.Is(err, todolist.ErrDeclined) && !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitCodeFor(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// promptConfirmer asks on w and accepts only an explicit y or yes from r.
func promptConfirmer(r io.Reader, w io.Writer) todolist.Confirmer {
	return todolist.ConfirmFunc(func(ctx context.Context, p todolist.Prompt) bool {
		fmt.Fprintln(w, p.Header)
		fmt.Fprintf(w, "%s (#%d) [y/N] ", p.Message, p.ID)

		answer, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(w)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}
