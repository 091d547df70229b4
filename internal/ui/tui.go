// Package ui provides the interactive terminal interface: a todo table with
// add and edit dialogs and a delete confirmation.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoctl/internal/output"
	"todoctl/internal/service"
	"todoctl/internal/todolist"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

// Run starts the TUI for vm, which must have been built with bridge.Options().
func Run(ctx context.Context, vm *todolist.Model, bridge *Bridge) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer vm.Wait()
	defer cancel()

	program := tea.NewProgram(newTUIModel(ctx, vm, bridge), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	ctx    context.Context
	vm     *todolist.Model
	bridge *Bridge

	todos   []service.Todo
	dialog  todolist.Dialog
	cursor  int
	height  int
	input   textinput.Model
	confirm *confirmMsg
}

func newTUIModel(ctx context.Context, vm *todolist.Model, bridge *Bridge) *tuiModel {
	input := textinput.New()
	input.Placeholder = "Title"
	input.CharLimit = 200
	input.Width = 48
	return &tuiModel{
		ctx:    ctx,
		vm:     vm,
		bridge: bridge,
		input:  input,
		dialog: vm.Dialog(),
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.vm.Load(m.ctx)
	return tea.Batch(m.bridge.waitForChange(), m.bridge.waitForConfirm())
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case changedMsg:
		m.refresh()
		return m, m.bridge.waitForChange()
	case confirmMsg:
		m.confirm = &msg
		return m, m.bridge.waitForConfirm()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.dialog.Mode != todolist.Closed:
			return m.updateDialog(msg)
		default:
			return m.updateTable(msg)
		}
	}
	return m, nil
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.answer(true)
	case "n", "N", "esc", "q":
		m.answer(false)
	}
	return m, nil
}

func (m *tuiModel) answer(ok bool) {
	m.confirm.reply <- ok
	m.confirm = nil
}

func (m *tuiModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.vm.CloseDialog()
		m.input.Blur()
		m.refresh()
		return m, nil
	case "tab":
		if m.dialog.Mode == todolist.AddOpen {
			m.vm.Stage(m.input.Value(), !m.dialog.Completed)
			m.refresh()
		}
		return m, nil
	case "enter":
		title := m.input.Value()
		if m.dialog.Mode == todolist.AddOpen {
			m.vm.Add(m.ctx, title, m.dialog.Completed)
		} else {
			m.vm.SetTitle(m.ctx, title)
		}
		m.input.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.vm.Stage(m.input.Value(), m.dialog.Completed)
	m.refresh()
	return m, cmd
}

func (m *tuiModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case "a":
		m.vm.OpenAdd()
		m.input.SetValue("")
		m.refresh()
		return m, m.input.Focus()
	}

	todo, ok := m.selected()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case " ", "space":
		m.vm.SetCompleted(m.ctx, todo, !todo.Completed)
		m.refresh()
	case "e", "enter":
		m.vm.OpenEdit(todo)
		m.input.SetValue(todo.Title)
		m.input.CursorEnd()
		m.refresh()
		return m, m.input.Focus()
	case "d", "x":
		m.vm.Delete(m.ctx, todo.ID)
	}
	return m, nil
}

func (m *tuiModel) selected() (service.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return service.Todo{}, false
	}
	return m.todos[m.cursor], true
}

func (m *tuiModel) refresh() {
	m.todos = m.vm.Todos()
	m.dialog = m.vm.Dialog()
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo") + "\n\n")

	switch {
	case m.confirm != nil:
		writeConfirm(&b, m.confirm.prompt)
	case m.dialog.Mode != todolist.Closed:
		m.writeDialog(&b)
	default:
		m.writeTable(&b)
	}

	if line := m.bridge.LastLog(); line != "" {
		b.WriteString("\n" + statusStyle.Render(line) + "\n")
	}
	writeFooter(&b, m.dialog.Mode, m.confirm != nil)
	return b.String()
}

func (m *tuiModel) writeTable(b *strings.Builder) {
	if len(m.todos) == 0 {
		b.WriteString("  No todos.\n")
		return
	}
	b.WriteString(fmt.Sprintf("  %-3s %4s  %s\n", "", "ID", "Title"))

	start, end := m.window()
	for i := start; i < end; i++ {
		b.WriteString(m.formatRow(i) + "\n")
	}
	if end-start < len(m.todos) {
		b.WriteString(fmt.Sprintf("\n  %d-%d of %d\n", start+1, end, len(m.todos)))
	}
}

func (m *tuiModel) formatRow(i int) string {
	todo := m.todos[i]
	marker := " "
	if todolist.IsLocal(todo.ID) {
		marker = "*"
	}
	row := fmt.Sprintf("%s %4d%s %s", output.Checkbox(todo.Completed), todo.ID, marker, output.NormalizeTitle(todo.Title))
	if todo.Completed {
		row = doneStyle.Render(row)
	}
	if i == m.cursor {
		return "> " + selectedStyle.Render(row)
	}
	return "  " + row
}

// window returns the slice of rows that fits the terminal around the cursor.
func (m *tuiModel) window() (int, int) {
	rows := m.height - 8
	if m.height == 0 || rows >= len(m.todos) {
		return 0, len(m.todos)
	}
	if rows < 5 {
		rows = 5
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(m.todos) {
		end = len(m.todos)
		start = end - rows
	}
	return start, end
}

func (m *tuiModel) writeDialog(b *strings.Builder) {
	var body strings.Builder
	if m.dialog.Mode == todolist.AddOpen {
		body.WriteString(titleStyle.Render("Add Todo") + "\n\n")
	} else {
		body.WriteString(titleStyle.Render(fmt.Sprintf("Edit Todo #%d", m.dialog.Editing.ID)) + "\n\n")
	}
	body.WriteString(m.input.View() + "\n\n")
	body.WriteString(fmt.Sprintf("%s Completed", output.Checkbox(m.dialog.Completed)))
	b.WriteString(dialogStyle.Render(body.String()) + "\n")
}

func writeConfirm(b *strings.Builder, p todolist.Prompt) {
	body := titleStyle.Render(p.Header) + "\n\n" + fmt.Sprintf("%s (#%d)", p.Message, p.ID)
	b.WriteString(dialogStyle.Render(body) + "\n")
}

func writeFooter(b *strings.Builder, mode todolist.Mode, confirming bool) {
	b.WriteString("\n")
	switch {
	case confirming:
		b.WriteString("y confirm | n cancel\n")
	case mode == todolist.AddOpen:
		b.WriteString("enter save | tab toggle completed | esc cancel\n")
	case mode == todolist.EditOpen:
		b.WriteString("enter save | esc cancel\n")
	default:
		b.WriteString("space toggle | a add | e edit | d delete | q quit\n")
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
