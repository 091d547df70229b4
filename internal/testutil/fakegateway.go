// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todoctl/internal/service"
)

// ErrNotFound is returned by Update when no stored record has the id.
var ErrNotFound = errors.New("not found")

// CreatedID mirrors the mock backend, which answers every create with the same id.
const CreatedID = 201

// Call is one recorded gateway invocation.
type Call struct {
	Method string // List, Create, Update or Delete
	Todo   service.Todo
	ID     int
}

// FakeGateway is an in-memory implementation of service.Gateway for testing.
type FakeGateway struct {
	mu    sync.Mutex
	todos []service.Todo
	calls []Call

	// Hold, when non-nil, makes every call block until a value is sent on it.
	Hold chan struct{}

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// UpdateReply, when set, builds the reply to Update from the sent record.
	// By default every field is echoed.
	UpdateReply func(service.Todo) service.Patch
}

// NewFakeGateway creates a FakeGateway seeded with todos.
func NewFakeGateway(todos ...service.Todo) *FakeGateway {
	return &FakeGateway{todos: append([]service.Todo(nil), todos...)}
}

// Calls returns every recorded call in order.
func (f *FakeGateway) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many calls hit the given method ("" for all).
func (f *FakeGateway) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if method == "" || c.Method == method {
			n++
		}
	}
	return n
}

// Stored returns the server-side records.
func (f *FakeGateway) Stored() []service.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Todo, len(f.todos))
	copy(out, f.todos)
	return out
}

func (f *FakeGateway) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *FakeGateway) wait(ctx context.Context) error {
	if f.Hold == nil {
		return nil
	}
	select {
	case <-f.Hold:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List implements service.Gateway.
func (f *FakeGateway) List(ctx context.Context) ([]service.Todo, error) {
	f.record(Call{Method: "List"})
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Stored(), nil
}

// Create implements service.Gateway. Like the mock backend it does not store
// the record and always answers with CreatedID.
func (f *FakeGateway) Create(ctx context.Context, title string, completed bool) (service.Todo, error) {
	todo := service.Todo{UserID: service.DefaultUserID, ID: CreatedID, Title: title, Completed: completed}
	f.record(Call{Method: "Create", Todo: todo})
	if err := f.wait(ctx); err != nil {
		return service.Todo{}, err
	}
	if f.CreateErr != nil {
		return service.Todo{}, f.CreateErr
	}
	return todo, nil
}

// Update implements service.Gateway.
func (f *FakeGateway) Update(ctx context.Context, todo service.Todo) (service.Patch, error) {
	f.record(Call{Method: "Update", Todo: todo, ID: todo.ID})
	if err := f.wait(ctx); err != nil {
		return service.Patch{}, err
	}
	if f.UpdateErr != nil {
		return service.Patch{}, f.UpdateErr
	}

	f.mu.Lock()
	found := false
	for i, t := range f.todos {
		if t.ID == todo.ID {
			f.todos[i] = todo
			found = true
		}
	}
	reply := f.UpdateReply
	f.mu.Unlock()

	if !found {
		return service.Patch{}, ErrNotFound
	}
	if reply != nil {
		return reply(todo), nil
	}
	return service.PatchOf(todo), nil
}

// Delete implements service.Gateway.
func (f *FakeGateway) Delete(ctx context.Context, id int) error {
	f.record(Call{Method: "Delete", ID: id})
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.todos[:0]
	for _, t := range f.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.todos = kept
	return nil
}
