package todolist

import "todoctl/internal/service"

// Mode is which form, if any, is showing.
type Mode int

const (
	Closed Mode = iota
	AddOpen
	EditOpen
)

func (m Mode) String() string {
	switch m {
	case AddOpen:
		return "add"
	case EditOpen:
		return "edit"
	default:
		return "closed"
	}
}

// Dialog is the staged form state. Only one dialog is open at a time.
type Dialog struct {
	Mode      Mode
	Editing   service.Todo // placeholder unless Mode is EditOpen
	Title     string
	Completed bool
}

func closedDialog() Dialog {
	return Dialog{Mode: Closed, Editing: service.Placeholder()}
}

// Dialog returns a copy of the current dialog state.
func (m *Model) Dialog() Dialog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dialog
}

// OpenAdd shows the add dialog with empty staged fields.
func (m *Model) OpenAdd() {
	m.mu.Lock()
	m.dialog = Dialog{Mode: AddOpen, Editing: service.Placeholder()}
	m.mu.Unlock()
	m.notify()
}

// OpenEdit shows the edit dialog staged with a copy of todo.
func (m *Model) OpenEdit(todo service.Todo) {
	m.logger.Debug("editing todo", "id", todo.ID, "title", todo.Title)
	m.mu.Lock()
	m.dialog = Dialog{
		Mode:      EditOpen,
		Editing:   todo,
		Title:     todo.Title,
		Completed: todo.Completed,
	}
	m.mu.Unlock()
	m.notify()
}

// Stage updates the form fields of the open dialog.
func (m *Model) Stage(title string, completed bool) {
	m.mu.Lock()
	m.dialog.Title = title
	m.dialog.Completed = completed
	m.mu.Unlock()
	m.notify()
}

// CloseDialog hides any dialog and resets the staged fields and record.
func (m *Model) CloseDialog() {
	m.mu.Lock()
	m.dialog = closedDialog()
	m.mu.Unlock()
	m.notify()
}
