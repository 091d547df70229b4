package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates the MCP server with every todo tool registered.
func NewServer(t *Tools, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"todoctl",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	listTool := NewListTool(t)
	s.AddTool(listTool.Definition(), listTool.Handle)

	addTool := NewAddTool(t)
	s.AddTool(addTool.Definition(), addTool.Handle)

	completeTool := NewCompleteTool(t)
	s.AddTool(completeTool.Definition(), completeTool.Handle)

	renameTool := NewRenameTool(t)
	s.AddTool(renameTool.Definition(), renameTool.Handle)

	deleteTool := NewDeleteTool(t)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	return s
}

const instructions = `todoctl mirrors a remote todo collection. The list is fetched once when the
server starts and patched after each change. Todos with ids above 200 are
local-only: edits to them are never sent to the server. Always ask the user
before calling delete_todo with confirm=true.`
