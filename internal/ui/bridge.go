package ui

import (
	"bytes"
	"context"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"todoctl/internal/todolist"
)

// Bridge carries view-model callbacks from gateway goroutines into the
// bubbletea event loop. It also captures diagnostics for the status line.
type Bridge struct {
	changes  chan struct{}
	confirms chan confirmMsg

	mu      sync.Mutex
	lastLog string
}

type changedMsg struct{}

type confirmMsg struct {
	prompt todolist.Prompt
	reply  chan bool
}

// NewBridge creates a Bridge.
func NewBridge() *Bridge {
	return &Bridge{
		changes:  make(chan struct{}, 1),
		confirms: make(chan confirmMsg),
	}
}

// Options wires the bridge into a todolist.Model.
func (b *Bridge) Options() []todolist.Option {
	return []todolist.Option{
		todolist.WithConfirmer(b),
		todolist.WithOnChange(b.changed),
	}
}

func (b *Bridge) changed() {
	select {
	case b.changes <- struct{}{}:
	default:
		// A refresh is already pending.
	}
}

// Confirm implements todolist.Confirmer by asking the event loop and waiting
// for the user's key press.
func (b *Bridge) Confirm(ctx context.Context, p todolist.Prompt) bool {
	reply := make(chan bool, 1)
	select {
	case b.confirms <- confirmMsg{prompt: p, reply: reply}:
	case <-ctx.Done():
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

// Write implements io.Writer for the diagnostic logger.
func (b *Bridge) Write(p []byte) (int, error) {
	line := strings.TrimSpace(string(bytes.TrimRight(p, "\n")))
	b.mu.Lock()
	b.lastLog = line
	b.mu.Unlock()
	b.changed()
	return len(p), nil
}

// LastLog returns the most recent diagnostic line.
func (b *Bridge) LastLog() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastLog
}

func (b *Bridge) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-b.changes
		return changedMsg{}
	}
}

func (b *Bridge) waitForConfirm() tea.Cmd {
	return func() tea.Msg {
		return <-b.confirms
	}
}
