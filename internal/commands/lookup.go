package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/todolist"
)

// newModel builds a view-model whose diagnostics go to errOut.
func newModel(cfg *config.Config, gw service.Gateway, errOut io.Writer, opts ...todolist.Option) *todolist.Model {
	logger := logging.New(errOut, cfg.LogOptions())
	return todolist.New(gw, append([]todolist.Option{todolist.WithLogger(logger)}, opts...)...)
}

// loadAndFind fetches the collection and returns the record with the given id.
// It reports failures on errOut and returns a non-zero exit code.
func loadAndFind(ctx context.Context, m *todolist.Model, id int, errOut io.Writer) (service.Todo, int) {
	if err := m.Load(ctx).Wait(); err != nil {
		return service.Todo{}, exitCodeFor(err)
	}
	todo, ok := m.Find(id)
	if !ok {
		fmt.Fprintf(errOut, "error: todo not found: %d\n", id)
		return service.Todo{}, exitcode.UserError
	}
	return todo, exitcode.Success
}

// exitCodeFor maps an operation error to an exit code. The view-model has
// already logged the failure.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, todolist.ErrEmptyTitle),
		errors.Is(err, todolist.ErrNoSelection),
		errors.Is(err, todolist.ErrDeclined):
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// printRefError reports a ParseTodoRef failure.
func printRefError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
