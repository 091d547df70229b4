// Package todolist holds the list view-model: an in-memory mirror of the todo
// collection, patched after each gateway round trip, plus the transient dialog
// state that backs the add and edit forms.
package todolist

import (
	"sync"

	"github.com/charmbracelet/log"

	"todoctl/internal/logging"
	"todoctl/internal/service"
)

// LocalIDThreshold is the highest id the backend persists. Records above it
// are fabricated by the mock API, so updates to them stay local.
const LocalIDThreshold = 200

// IsLocal reports whether writes to the record with this id skip the network.
func IsLocal(id int) bool {
	return id > LocalIDThreshold
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithConfirmer sets who answers delete confirmations.
// Without one, every deletion is declined.
func WithConfirmer(c Confirmer) Option {
	return func(m *Model) {
		m.confirm = c
	}
}

// WithOnChange registers a callback invoked after every state change.
// It runs outside the model lock and may read the model.
func WithOnChange(fn func()) Option {
	return func(m *Model) {
		m.onChange = fn
	}
}

// Model is the list view-model. It is safe for concurrent use: gateway
// completions run on their own goroutines and take the lock to patch state.
type Model struct {
	gw       service.Gateway
	logger   *log.Logger
	confirm  Confirmer
	onChange func()

	mu     sync.Mutex
	todos  []service.Todo
	dialog Dialog
	seq    map[int]uint64 // id -> latest issued update

	inflight sync.WaitGroup
}

// New creates an empty Model backed by gw. Call Load to fetch the collection.
func New(gw service.Gateway, opts ...Option) *Model {
	m := &Model{
		gw:      gw,
		logger:  logging.Discard(),
		confirm: RejectAll,
		dialog:  closedDialog(),
		seq:     make(map[int]uint64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Todos returns a copy of the local collection in display order.
func (m *Model) Todos() []service.Todo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Todo, len(m.todos))
	copy(out, m.todos)
	return out
}

// Find returns the first local record with the given id.
func (m *Model) Find(id int) (service.Todo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.todos[i], true
	}
	return service.Todo{}, false
}

// Wait blocks until every operation started so far has completed.
func (m *Model) Wait() {
	m.inflight.Wait()
}

func (m *Model) indexOf(id int) int {
	for i, t := range m.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// bump records a new write for id and returns its sequence number.
// Caller must hold m.mu.
func (m *Model) bump(id int) uint64 {
	m.seq[id]++
	return m.seq[id]
}

// current reports whether seq is still the latest write for id.
// Caller must hold m.mu.
func (m *Model) current(id int, seq uint64) bool {
	return m.seq[id] == seq
}

func (m *Model) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}

// track runs fn on its own goroutine and reports its outcome on the returned Op.
func (m *Model) track(fn func() error) *Op {
	op := newOp()
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		op.finish(fn())
	}()
	return op
}
