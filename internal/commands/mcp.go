package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/mcptools"
	"todoctl/internal/service"
	"todoctl/internal/todolist"
)

func init() {
	Register(&MCPCmd{})
}

// MCPCmd implements the mcp command.
type MCPCmd struct{}

func (c *MCPCmd) Name() string       { return "mcp" }
func (c *MCPCmd) Aliases() []string  { return nil }
func (c *MCPCmd) Synopsis() string   { return "Serve todo tools over MCP on stdio" }
func (c *MCPCmd) Usage() string      { return "todoctl mcp" }
func (c *MCPCmd) NeedsBackend() bool { return true }

func (c *MCPCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MCPCmd) Run(ctx context.Context, cfg *config.Config, gw service.Gateway, args []string, out, errOut io.Writer) int {
	// stdout carries the protocol, so diagnostics stay on errOut.
	vm := newModel(cfg, gw, errOut, todolist.WithConfirmer(mcptools.Confirmer))
	if err := vm.Load(ctx).Wait(); err != nil {
		return exitCodeFor(err)
	}
	defer vm.Wait()

	s := mcptools.NewServer(mcptools.New(vm), Version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(errOut, "error: mcp server: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
