package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"todoctl/internal/output"
)

// ListTool handles list_todos.
type ListTool struct{ t *Tools }

// NewListTool creates a ListTool.
func NewListTool(t *Tools) *ListTool { return &ListTool{t: t} }

// Definition returns the MCP tool definition for list_todos.
func (l *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("list_todos",
		mcp.WithDescription("List the locally mirrored todos as '[x]   id  title' rows. Ids above 200 are local-only."),
	)
}

// Handle processes the list_todos tool call.
func (l *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatTodos(l.t.vm.Todos())), nil
}

// AddTool handles add_todo.
type AddTool struct{ t *Tools }

// NewAddTool creates an AddTool.
func NewAddTool(t *Tools) *AddTool { return &AddTool{t: t} }

// Definition returns the MCP tool definition for add_todo.
func (a *AddTool) Definition() mcp.Tool {
	return mcp.NewTool("add_todo",
		mcp.WithDescription("Create a todo. The new record gets the id after the last one in the list."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Todo title, must not be blank"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Create the todo already completed (default: false)"),
		),
	)
}

// Handle processes the add_todo tool call.
func (a *AddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	completed := boolArg(req, "completed", false)

	a.t.dialog.Lock()
	defer a.t.dialog.Unlock()

	before := len(a.t.vm.Todos())
	a.t.vm.OpenAdd()
	a.t.vm.Stage(title, completed)
	if err := a.t.vm.Add(ctx, title, completed).Wait(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	todos := a.t.vm.Todos()
	if len(todos) <= before {
		return mcp.NewToolResultText("added todo"), nil
	}
	created := todos[len(todos)-1]
	return mcp.NewToolResultText(fmt.Sprintf("added todo #%d: %s", created.ID, created.Title)), nil
}

// CompleteTool handles set_todo_completed.
type CompleteTool struct{ t *Tools }

// NewCompleteTool creates a CompleteTool.
func NewCompleteTool(t *Tools) *CompleteTool { return &CompleteTool{t: t} }

// Definition returns the MCP tool definition for set_todo_completed.
func (c *CompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("set_todo_completed",
		mcp.WithDescription("Mark a todo completed or not completed."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo id")),
		mcp.WithBoolean("completed", mcp.Required(), mcp.Description("New completed state")),
	)
}

// Handle processes the set_todo_completed tool call.
func (c *CompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "id", 0)
	completed := boolArg(req, "completed", true)

	todo, ok := c.t.vm.Find(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("todo not found: %d", id)), nil
	}
	if err := c.t.vm.SetCompleted(ctx, todo, completed).Wait(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	todo, _ = c.t.vm.Find(id)
	return mcp.NewToolResultText(fmt.Sprintf("%s #%d", output.Checkbox(todo.Completed), id)), nil
}

// RenameTool handles rename_todo.
type RenameTool struct{ t *Tools }

// NewRenameTool creates a RenameTool.
func NewRenameTool(t *Tools) *RenameTool { return &RenameTool{t: t} }

// Definition returns the MCP tool definition for rename_todo.
func (r *RenameTool) Definition() mcp.Tool {
	return mcp.NewTool("rename_todo",
		mcp.WithDescription("Change the title of a todo."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title, must not be blank")),
	)
}

// Handle processes the rename_todo tool call.
func (r *RenameTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "id", 0)
	title := req.GetString("title", "")

	todo, ok := r.t.vm.Find(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("todo not found: %d", id)), nil
	}

	r.t.dialog.Lock()
	defer r.t.dialog.Unlock()

	r.t.vm.OpenEdit(todo)
	r.t.vm.Stage(title, todo.Completed)
	if err := r.t.vm.SetTitle(ctx, title).Wait(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("renamed todo #%d: %s", id, strings.TrimSpace(title))), nil
}

// DeleteTool handles delete_todo.
type DeleteTool struct{ t *Tools }

// NewDeleteTool creates a DeleteTool.
func NewDeleteTool(t *Tools) *DeleteTool { return &DeleteTool{t: t} }

// Definition returns the MCP tool definition for delete_todo.
func (d *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_todo",
		mcp.WithDescription("Delete a todo. Nothing happens unless confirm is true; ask the user first."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo id")),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("The user's answer to 'Are you sure you want to delete this todo?'")),
	)
}

// Handle processes the delete_todo tool call.
func (d *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "id", 0)
	confirm := boolArg(req, "confirm", false)

	if _, ok := d.t.vm.Find(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("todo not found: %d", id)), nil
	}
	if err := d.t.vm.Delete(withConfirmation(ctx, confirm), id).Wait(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted todo #%d", id)), nil
}
