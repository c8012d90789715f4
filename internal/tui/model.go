// Package tui is an interactive terminal surface for the task list manager.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dashkit/todo/internal/task"
	"github.com/dashkit/todo/internal/todo"
)

// mode selects which keys the model responds to.
type mode int

const (
	modeList mode = iota
	modeInput
)

// expireMsg fires when the message posted by operation seq should disappear.
type expireMsg struct{ seq int }

// Model is the bubbletea model. The manager is shared by pointer; the model
// itself is a value as bubbletea expects.
type Model struct {
	ctx     context.Context
	manager *todo.Manager
	ttl     time.Duration
	keys    keyMap
	input   textinput.Model
	mode    mode
	cursor  int
	seq     int
	width   int
	err     error
}

// New creates a model over a loaded manager. ttl should match the
// manager's message TTL.
func New(ctx context.Context, manager *todo.Manager, ttl time.Duration) Model {
	in := textinput.New()
	in.Placeholder = "What needs doing?"
	in.Prompt = "+ "

	return Model{
		ctx:     ctx,
		manager: manager,
		ttl:     ttl,
		keys:    defaultKeyMap(),
		input:   in,
		mode:    modeList,
	}
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, manager *todo.Manager, ttl time.Duration) error {
	p := tea.NewProgram(New(ctx, manager, ttl), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case expireMsg:
		if msg.seq == m.seq {
			m.manager.DismissMessage()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == modeInput {
			return m.handleInputKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.manager.Visible())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < rows-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeInput
		m.input.SetValue(m.manager.Input())
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Complete):
		if rows == 0 {
			return m, nil
		}
		_, err := m.manager.Complete(m.ctx, m.cursor)
		return m.afterOperation(err)
	case key.Matches(msg, m.keys.Delete):
		if rows == 0 {
			return m, nil
		}
		_, err := m.manager.Delete(m.ctx, m.cursor)
		return m.afterOperation(err)
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.manager.Filter().Next())
	case key.Matches(msg, m.keys.ShowAll):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, m.keys.ShowPend):
		m.setFilter(task.FilterPending)
	case key.Matches(msg, m.keys.ShowDone):
		m.setFilter(task.FilterCompleted)
	}
	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.manager.SetInput(m.input.Value())
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.manager.SetInput(m.input.Value())
		_, err := m.manager.Submit(m.ctx)
		if err == nil {
			m.input.SetValue("")
			m.mode = modeList
			m.input.Blur()
			m.cursor = len(m.manager.Visible()) - 1
		}
		return m.afterOperation(err)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.manager.SetInput(m.input.Value())
	return m, cmd
}

// afterOperation clamps the cursor and schedules the message to expire.
// Validation and stale reference errors are shown through the manager's
// message; anything else ends the program.
func (m Model) afterOperation(err error) (tea.Model, tea.Cmd) {
	if err != nil && !todo.IsValidation(err) && !todo.IsStale(err) {
		m.err = err
		return m, tea.Quit
	}
	m.clampCursor()
	m.seq++
	seq := m.seq
	return m, tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return expireMsg{seq: seq}
	})
}

func (m *Model) setFilter(f task.Filter) {
	m.manager.SetFilter(f)
	m.cursor = 0
}

func (m *Model) clampCursor() {
	rows := len(m.manager.Visible())
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	v := m.manager.Render()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(countsStyle.Render(fmt.Sprintf("%d total · %d pending · %d completed",
		v.Counts.Total, v.Counts.Pending, v.Counts.Completed)))
	b.WriteString("\n")
	b.WriteString(renderTabs(v.Filter))
	b.WriteString("\n\n")

	if v.Empty != todo.EmptyNone {
		b.WriteString(emptyStyle.Render(v.Empty.Text()))
		b.WriteString("\n")
	}
	for _, row := range v.Rows {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeInput {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	message := v.Message
	if v.InputError {
		b.WriteString(inputErrStyle.Render(inputErrorText(message)))
		b.WriteString("\n")
		if message != nil && message.Kind == todo.MessageError {
			message = nil
		}
	}
	if message != nil {
		style := successStyle
		if message.Kind == todo.MessageError {
			style = errorStyle
		}
		b.WriteString(style.Render(message.Text))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

// inputErrorText is the rejection reason posted by the manager, or a generic
// hint once that message has been dismissed.
func inputErrorText(msg *todo.Message) string {
	if msg != nil && msg.Kind == todo.MessageError {
		return msg.Text
	}
	return "A description is required"
}

func (m Model) renderRow(row todo.Row) string {
	pointer := "  "
	if m.mode == modeList && row.VisibleIndex == m.cursor {
		pointer = cursorStyle.Render("> ")
	}
	box := "[ ]"
	desc := row.Description
	if row.Completed {
		box = "[x]"
		desc = completedStyle.Render(desc)
	}
	return fmt.Sprintf("%s%d. %s %s", pointer, row.Number(), box, desc)
}

func renderTabs(active task.Filter) string {
	labels := map[task.Filter]string{
		task.FilterAll:       "1 All",
		task.FilterPending:   "2 Pending",
		task.FilterCompleted: "3 Completed",
	}
	parts := make([]string, 0, len(task.Filters))
	for _, f := range task.Filters {
		if f == active {
			parts = append(parts, activeTab.Render(labels[f]))
		} else {
			parts = append(parts, inactiveTab.Render(labels[f]))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	bindings := m.keys.listHelp()
	if m.mode == modeInput {
		bindings = m.keys.inputHelp()
	}
	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		h := kb.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return helpStyle.Render(strings.Join(parts, " · "))
}
