// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
)

// Checkbox markers for the completed column.
const (
	Checked   = "[x]"
	Unchecked = "[ ]"
)

// FormatTodo formats one row of the todo table.
// Format: "{BOX} {ID:>4}  {TITLE}\n" (checkbox, 4-wide right-aligned id, two spaces, title)
func FormatTodo(w io.Writer, todo service.Todo) {
	fmt.Fprintf(w, "%s %4d  %s\n", Checkbox(todo.Completed), todo.ID, NormalizeTitle(todo.Title))
}

// FormatTodos formats the whole table, or a notice when it is empty.
func FormatTodos(w io.Writer, todos []service.Todo, quiet bool) {
	if len(todos) == 0 {
		if !quiet {
			fmt.Fprintln(w, "no todos found")
		}
		return
	}
	for _, todo := range todos {
		FormatTodo(w, todo)
	}
}

// Checkbox renders the completed flag.
func Checkbox(completed bool) string {
	if completed {
		return Checked
	}
	return Unchecked
}

// NormalizeTitle normalizes a todo title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
