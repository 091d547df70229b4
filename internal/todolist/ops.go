package todolist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todoctl/internal/service"
)

var (
	// ErrEmptyTitle rejects blank or whitespace-only titles before any network call.
	ErrEmptyTitle = errors.New("todo title cannot be empty")

	// ErrNoSelection means SetTitle ran without a staged record.
	ErrNoSelection = errors.New("no todo selected for editing")

	// ErrDeclined means the user did not accept the delete confirmation.
	ErrDeclined = errors.New("deletion not confirmed")
)

// Load fetches the collection and replaces the local copy wholesale.
// On failure the local collection is left untouched.
func (m *Model) Load(ctx context.Context) *Op {
	return m.track(func() error {
		todos, err := m.gw.List(ctx)
		if err != nil {
			m.logger.Error("error fetching todos", "err", err)
			return fmt.Errorf("fetching todos: %w", err)
		}

		m.mu.Lock()
		m.todos = todos
		m.mu.Unlock()
		m.notify()
		return nil
	})
}

// Add creates a todo and appends it locally once the server accepts it.
// The dialog is closed right away, whatever the outcome.
func (m *Model) Add(ctx context.Context, title string, completed bool) *Op {
	if strings.TrimSpace(title) == "" {
		m.logger.Warn(ErrEmptyTitle.Error())
		m.CloseDialog()
		return finished(ErrEmptyTitle)
	}

	op := m.track(func() error {
		created, err := m.gw.Create(ctx, title, completed)
		if err != nil {
			m.logger.Error("error adding todo", "err", err)
			return fmt.Errorf("adding todo: %w", err)
		}

		m.mu.Lock()
		m.todos = append(m.todos, m.withLocalID(created))
		m.mu.Unlock()
		m.notify()
		return nil
	})
	m.CloseDialog()
	return op
}

// withLocalID replaces the server id with last.ID+1. The mock backend hands
// out the same id to every new record, so the server value is not usable.
// Caller must hold m.mu.
func (m *Model) withLocalID(created service.Todo) service.Todo {
	n := len(m.todos)
	if n == 0 {
		m.logger.Warn("collection is empty, keeping server id", "id", created.ID)
		return created
	}
	serverID := created.ID
	created.ID = m.todos[n-1].ID + 1
	m.logger.Debug("assigned local id", "id", created.ID, "server_id", serverID)
	return created
}

// SetCompleted flips the completed flag of todo. Local-only records change
// immediately; others change once the server echoes the new value.
func (m *Model) SetCompleted(ctx context.Context, todo service.Todo, completed bool) *Op {
	updated := todo
	updated.Completed = completed

	m.mu.Lock()
	seq := m.bump(todo.ID)
	if IsLocal(todo.ID) {
		if i := m.indexOf(todo.ID); i >= 0 {
			m.todos[i].Completed = completed
		}
		m.mu.Unlock()
		m.notify()
		return finished(nil)
	}
	m.mu.Unlock()

	return m.track(func() error {
		res, err := m.gw.Update(ctx, updated)
		if err != nil {
			m.logger.Error("error updating todo", "id", todo.ID, "err", err)
			return fmt.Errorf("updating todo %d: %w", todo.ID, err)
		}

		m.mu.Lock()
		if !m.current(todo.ID, seq) {
			m.mu.Unlock()
			m.logger.Debug("discarding stale update", "id", todo.ID)
			return nil
		}
		if i := m.indexOf(todo.ID); i >= 0 {
			m.todos[i].Completed = res.Apply(m.todos[i]).Completed
		}
		m.mu.Unlock()
		m.notify()
		return nil
	})
}

// SetTitle renames the record staged by OpenEdit. The dialog is closed right
// away, whatever the outcome.
func (m *Model) SetTitle(ctx context.Context, title string) *Op {
	if strings.TrimSpace(title) == "" {
		m.logger.Warn(ErrEmptyTitle.Error())
		m.CloseDialog()
		return finished(ErrEmptyTitle)
	}

	m.mu.Lock()
	editing := m.dialog.Editing
	if editing.ID == 0 {
		m.mu.Unlock()
		m.logger.Warn(ErrNoSelection.Error())
		m.CloseDialog()
		return finished(ErrNoSelection)
	}

	updated := editing
	updated.Title = title
	seq := m.bump(updated.ID)

	if IsLocal(updated.ID) {
		if i := m.indexOf(updated.ID); i >= 0 {
			m.todos[i] = updated
		}
		m.mu.Unlock()
		m.CloseDialog()
		return finished(nil)
	}
	m.mu.Unlock()

	op := m.track(func() error {
		res, err := m.gw.Update(ctx, updated)
		if err != nil {
			m.logger.Error("error updating todo", "id", updated.ID, "err", err)
			return fmt.Errorf("updating todo %d: %w", updated.ID, err)
		}
		m.mu.Lock()
		if !m.current(updated.ID, seq) {
			m.mu.Unlock()
			m.logger.Debug("discarding stale update", "id", updated.ID)
			return nil
		}
		if i := m.indexOf(updated.ID); i >= 0 {
			// The reply may be partial; fields it omits keep their local value.
			m.todos[i] = res.Apply(m.todos[i])
		}
		m.mu.Unlock()
		m.notify()
		return nil
	})
	m.CloseDialog()
	return op
}

// Delete asks for confirmation and, once accepted, deletes the record on the
// server and drops every local entry with that id. Local-only ids are sent too.
func (m *Model) Delete(ctx context.Context, id int) *Op {
	return m.track(func() error {
		if !m.confirm.Confirm(ctx, deletePrompt(id)) {
			m.logger.Debug("deletion declined", "id", id)
			return ErrDeclined
		}

		if err := m.gw.Delete(ctx, id); err != nil {
			m.logger.Error("error deleting todo", "id", id, "err", err)
			return fmt.Errorf("deleting todo %d: %w", id, err)
		}

		m.mu.Lock()
		kept := m.todos[:0:0]
		for _, t := range m.todos {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		m.todos = kept
		m.mu.Unlock()
		m.notify()
		return nil
	})
}
