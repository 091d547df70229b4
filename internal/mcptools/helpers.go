// Package mcptools exposes the todo view-model as MCP tools.
//
// Each tool follows the same pattern:
// - A struct holding the shared *Tools
// - Definition() returns the mcp.Tool schema
// - Handle() runs the view-model operation and waits for its outcome
package mcptools

import (
	"bytes"
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"todoctl/internal/output"
	"todoctl/internal/service"
	"todoctl/internal/todolist"
)

// Tools holds what every handler shares.
type Tools struct {
	vm *todolist.Model

	// dialog serializes the open/stage/save flows, which share one staged record.
	dialog sync.Mutex
}

// New creates the tool set over vm. vm must be built with Confirmer as its
// confirmer so delete_todo can pass the caller's answer through.
func New(vm *todolist.Model) *Tools {
	return &Tools{vm: vm}
}

type confirmKey struct{}

// Confirmer answers delete prompts with the confirm argument of the current call.
var Confirmer todolist.Confirmer = todolist.ConfirmFunc(func(ctx context.Context, _ todolist.Prompt) bool {
	ok, _ := ctx.Value(confirmKey{}).(bool)
	return ok
})

func withConfirmation(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, ok)
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

func formatTodos(todos []service.Todo) string {
	var buf bytes.Buffer
	output.FormatTodos(&buf, todos, false)
	return buf.String()
}
