// Package todo implements the task list manager: it owns the ordered task
// list, writes it through to a storage key on every mutation, and renders a
// filtered view with counters for a display surface.
//
// A Manager is not safe for concurrent use. Each operation runs to completion
// and callers that multiplex requests must serialize access.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dashkit/todo/internal/storage"
	"github.com/dashkit/todo/internal/task"
)

const (
	// DefaultKey is the storage key holding the task list.
	DefaultKey = "tareasList"
	// DefaultMessageTTL is how long a transient message stays visible.
	DefaultMessageTTL = 3 * time.Second
)

// Logger receives warnings about recoverable problems such as malformed
// persisted data.
type Logger interface {
	Printf(format string, v ...any)
}

// Manager owns the backing task list, the active filter and the input draft.
type Manager struct {
	store    storage.Store
	key      string
	logger   Logger
	verbose  func(string)
	ttl      time.Duration
	now      func() time.Time
	renderer Renderer

	tasks      []task.Task
	filter     task.Filter
	input      string
	inputError bool
	message    *Message
}

// Option configures a Manager.
type Option func(*Manager)

// WithKey sets the storage key. The default is DefaultKey.
func WithKey(key string) Option {
	return func(m *Manager) {
		m.key = key
	}
}

// WithLogger sets the warning logger. The default is log.Default().
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithVerbose sets a callback for verbose debug messages.
func WithVerbose(fn func(string)) Option {
	return func(m *Manager) {
		m.verbose = fn
	}
}

// WithMessageTTL sets how long messages stay visible.
func WithMessageTTL(d time.Duration) Option {
	return func(m *Manager) {
		m.ttl = d
	}
}

// WithClock replaces time.Now for message expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithRenderer sets the display surface that receives a View after every operation.
func WithRenderer(r Renderer) Option {
	return func(m *Manager) {
		m.renderer = r
	}
}

// New creates a Manager over store with an empty list. Call Load to read
// the persisted list.
func New(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		key:    DefaultKey,
		logger: log.Default(),
		ttl:    DefaultMessageTTL,
		now:    time.Now,
		tasks:  []task.Task{},
		filter: task.FilterAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the storage key the manager reads and writes.
func (m *Manager) Key() string {
	return m.key
}

func (m *Manager) logVerbose(msg string) {
	if m.verbose != nil {
		m.verbose(msg)
	}
}

// Load reads the storage key and replaces the in-memory list. A missing key
// yields an empty list. Malformed contents, including a failed checksum, are
// logged and discarded. Records without an ID, or repeating an earlier
// record's ID, are given a fresh one and the repaired list is written back.
// Only storage I/O failures are returned.
func (m *Manager) Load(ctx context.Context) error {
	m.tasks = []task.Task{}

	data, err := m.store.Get(ctx, m.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		m.logVerbose(fmt.Sprintf("load: key %s not found, starting empty", m.key))
		m.render()
		return nil
	case errors.Is(err, storage.ErrChecksum):
		m.logger.Printf("warning: discarding task list %s: %v", m.key, err)
		m.render()
		return nil
	case err != nil:
		m.render()
		return fmt.Errorf("failed to load task list: %w", err)
	}

	tasks, err := task.Unmarshal(data)
	if err != nil {
		m.logger.Printf("warning: discarding malformed task list %s: %v", m.key, err)
		m.render()
		return nil
	}
	m.logVerbose(fmt.Sprintf("load: read %d tasks", len(tasks)))

	assigned, err := task.RepairIDs(tasks)
	if err != nil {
		return fmt.Errorf("failed to assign task IDs: %w", err)
	}
	m.tasks = tasks

	if assigned > 0 {
		m.logVerbose(fmt.Sprintf("load: assigned %d missing or duplicate IDs", assigned))
		if err := m.persist(ctx); err != nil {
			m.logger.Printf("warning: failed to write repaired task list: %v", err)
		}
	}

	m.render()
	return nil
}

// Tasks returns a copy of the backing list in order.
func (m *Manager) Tasks() []task.Task {
	return append([]task.Task(nil), m.tasks...)
}

// Filter returns the active filter.
func (m *Manager) Filter() task.Filter {
	return m.filter
}

// Counts returns counters over the full backing list.
func (m *Manager) Counts() task.Counts {
	return task.Count(m.tasks)
}

// Visible returns the tasks shown under the active filter.
func (m *Manager) Visible() []task.Task {
	return m.filter.Apply(m.tasks)
}

// SetInput stores the input draft and clears any input error.
func (m *Manager) SetInput(text string) {
	m.input = text
	m.inputError = false
}

// Input returns the current input draft.
func (m *Manager) Input() string {
	return m.input
}

// ClearInputError hides the inline validation error without other changes.
func (m *Manager) ClearInputError() {
	m.inputError = false
	m.render()
}

// Submit adds the current input draft as a task.
func (m *Manager) Submit(ctx context.Context) (task.Task, error) {
	return m.Add(ctx, m.input)
}

// Add appends a pending task and persists the list. A blank description
// sets the input error, posts an error message and changes nothing else.
// Any other description is stored as given, after trimming.
func (m *Manager) Add(ctx context.Context, description string) (task.Task, error) {
	if err := task.ValidateDescription(description); err != nil {
		m.inputError = true
		m.post(MessageError, "Please enter a description for the task")
		m.render()
		return task.Task{}, &ValidationError{Err: err}
	}

	id, err := task.GenerateID(task.IDSet(m.tasks))
	if err != nil {
		return task.Task{}, err
	}
	t := task.NewTask(id, description)

	previous := m.tasks
	m.tasks = append(append([]task.Task(nil), m.tasks...), t)
	if err := m.persist(ctx); err != nil {
		m.tasks = previous
		m.post(MessageError, "Could not save the task list")
		m.render()
		return task.Task{}, err
	}

	m.inputError = false
	m.input = ""
	m.post(MessageSuccess, "Task added successfully")
	m.render()
	return t, nil
}

// Complete marks the task at visibleIndex (0-based, in the filtered view)
// as completed and persists the list.
func (m *Manager) Complete(ctx context.Context, visibleIndex int) (task.Task, error) {
	pos, err := m.resolveVisible(visibleIndex)
	if err != nil {
		return task.Task{}, err
	}
	return m.completeAt(ctx, pos)
}

// CompleteID marks the task matching ref (full ID or unique prefix) as completed.
func (m *Manager) CompleteID(ctx context.Context, ref string) (task.Task, error) {
	pos, err := m.resolveRef(ref)
	if err != nil {
		return task.Task{}, err
	}
	return m.completeAt(ctx, pos)
}

// Delete removes the task at visibleIndex (0-based, in the filtered view)
// and persists the list.
func (m *Manager) Delete(ctx context.Context, visibleIndex int) (task.Task, error) {
	pos, err := m.resolveVisible(visibleIndex)
	if err != nil {
		return task.Task{}, err
	}
	return m.deleteAt(ctx, pos)
}

// DeleteID removes the task matching ref (full ID or unique prefix).
func (m *Manager) DeleteID(ctx context.Context, ref string) (task.Task, error) {
	pos, err := m.resolveRef(ref)
	if err != nil {
		return task.Task{}, err
	}
	return m.deleteAt(ctx, pos)
}

// SetFilter changes the active filter. Nothing is persisted.
func (m *Manager) SetFilter(f task.Filter) {
	m.filter = f
	m.render()
}

// Message returns the current message, or nil once it has expired.
func (m *Manager) Message() *Message {
	if m.message == nil {
		return nil
	}
	if !m.now().Before(m.message.Expires) {
		m.message = nil
		return nil
	}
	msg := *m.message
	return &msg
}

// DismissMessage clears the current message.
func (m *Manager) DismissMessage() {
	m.message = nil
	m.render()
}

// Render builds the View for the active filter. Counters always cover the
// full backing list.
func (m *Manager) Render() View {
	visible := m.Visible()

	empty := EmptyNone
	switch {
	case len(m.tasks) == 0:
		empty = EmptyNoTasks
	case len(visible) == 0:
		empty = EmptyNoMatch
	}

	return View{
		Filter:     m.filter,
		Rows:       buildRows(visible),
		Counts:     m.Counts(),
		Empty:      empty,
		Input:      m.input,
		InputError: m.inputError,
		Message:    m.Message(),
	}
}

func (m *Manager) completeAt(ctx context.Context, pos int) (task.Task, error) {
	previous := m.tasks[pos]
	m.tasks[pos].Completed = true
	if err := m.persist(ctx); err != nil {
		m.tasks[pos] = previous
		m.post(MessageError, "Could not save the task list")
		m.render()
		return task.Task{}, err
	}

	t := m.tasks[pos]
	m.post(MessageSuccess, fmt.Sprintf("Task %q marked as completed", t.Description))
	m.render()
	return t, nil
}

func (m *Manager) deleteAt(ctx context.Context, pos int) (task.Task, error) {
	removed := m.tasks[pos]
	previous := m.tasks

	remaining := make([]task.Task, 0, len(m.tasks)-1)
	remaining = append(remaining, m.tasks[:pos]...)
	remaining = append(remaining, m.tasks[pos+1:]...)
	m.tasks = remaining

	if err := m.persist(ctx); err != nil {
		m.tasks = previous
		m.post(MessageError, "Could not save the task list")
		m.render()
		return task.Task{}, err
	}

	m.post(MessageSuccess, fmt.Sprintf("Task %q deleted", removed.Description))
	m.render()
	return removed, nil
}

// resolveVisible maps a visible index through the filtered view to a
// position in the backing list by task ID.
func (m *Manager) resolveVisible(visibleIndex int) (int, error) {
	visible := m.Visible()
	pos := -1
	if visibleIndex >= 0 && visibleIndex < len(visible) {
		pos = task.IndexOf(m.tasks, visible[visibleIndex].ID)
	}
	if pos < 0 {
		m.post(MessageError, "Invalid task index")
		m.render()
		return -1, fmt.Errorf("%w: %d", ErrStaleIndex, visibleIndex+1)
	}
	return pos, nil
}

func (m *Manager) resolveRef(ref string) (int, error) {
	id, err := task.ResolveID(m.tasks, ref)
	if err != nil {
		m.post(MessageError, capitalize(err.Error()))
		m.render()
		if errors.Is(err, task.ErrNotFound) || errors.Is(err, task.ErrAmbiguous) {
			return -1, err
		}
		return -1, &ValidationError{Err: err}
	}
	return task.IndexOf(m.tasks, id), nil
}

// persist overwrites the storage key with the whole backing list.
func (m *Manager) persist(ctx context.Context) error {
	data, err := task.Marshal(m.tasks)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		return fmt.Errorf("failed to save task list: %w", err)
	}
	m.logVerbose(fmt.Sprintf("persist: wrote %d tasks to %s", len(m.tasks), m.key))
	return nil
}

func (m *Manager) post(kind MessageKind, text string) {
	m.message = &Message{
		Kind:    kind,
		Text:    text,
		Expires: m.now().Add(m.ttl),
	}
}

func (m *Manager) render() {
	if m.renderer != nil {
		m.renderer.Render(m.Render())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
