// Package history implements undo/redo over command.Command values: a
// coalescing execute stack, drag and transaction grouping, and a
// versioned persistence envelope.
package history

import (
	"encoding/json"
	"time"

	"github.com/canvasengine/canvascore/internal/canvaserr"
	"github.com/canvasengine/canvascore/internal/command"
	"github.com/canvasengine/canvascore/internal/scene"
)

const (
	defaultMaxHistory     = 100
	defaultCoalesceWindow = 500 * time.Millisecond
	defaultMaxMemoryBytes = 50 * 1024 * 1024

	envelopeVersion = 1
)

// Options configures a Manager. Zero values are replaced with the package
// defaults.
type Options struct {
	MaxHistory      int
	CoalesceWindow  time.Duration
	MaxMemoryBytes  int64
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxHistory <= 0 {
		o.MaxHistory = defaultMaxHistory
	}
	if o.CoalesceWindow <= 0 {
		o.CoalesceWindow = defaultCoalesceWindow
	}
	if o.MaxMemoryBytes <= 0 {
		o.MaxMemoryBytes = defaultMaxMemoryBytes
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type entry struct {
	cmd     command.Command
	at      time.Time
	memSize int64
}

// Manager owns the undo/redo stacks for a single scene graph.
//
// Manager is single-threaded cooperative, matching the rest of this
// module: it takes no internal locks and refuses reentrant calls instead.
type Manager struct {
	graph   *scene.Graph
	options Options

	undoStack []entry
	redoStack []entry

	inFlight bool

	drag *dragSession
	txn  *transaction

	listeners []func()
}

// New creates a Manager bound to graph.
func New(graph *scene.Graph, options Options) *Manager {
	return &Manager{graph: graph, options: options.withDefaults()}
}

// Execute runs cmd against the scene graph and pushes it onto the undo
// stack, clearing the redo stack. If cmd is coalesce-eligible with the
// top of the undo stack (same node set, same command type, within the
// coalesce window), it replaces that entry instead of pushing a new one.
// Returns false without mutating history if cmd.Execute fails or a
// history operation is already in flight.
func (m *Manager) Execute(cmd command.Command) bool {
	if m.inFlight {
		return false
	}
	m.inFlight = true
	defer func() { m.inFlight = false }()

	if !cmd.Execute(m.graph) {
		return false
	}

	m.redoStack = nil
	now := m.options.Now()

	if len(m.undoStack) > 0 {
		top := m.undoStack[len(m.undoStack)-1]
		if coalesceTarget(top.cmd, cmd) && now.Sub(top.at) <= m.options.CoalesceWindow {
			merged := cmd
			if mergeable, ok := cmd.(command.Mergeable); ok {
				merged = mergeable.MergeWithPrevious(top.cmd)
			}
			m.undoStack[len(m.undoStack)-1] = entry{cmd: merged, at: top.at, memSize: estimateSize(merged)}
			m.trim()
			m.notify()
			return true
		}
	}

	m.undoStack = append(m.undoStack, entry{cmd: cmd, at: now, memSize: estimateSize(cmd)})
	m.trim()
	m.notify()
	return true
}

// coalesceTarget reports whether next should replace prev in place rather
// than push a new history entry: same concrete command type acting on the
// same node set.
func coalesceTarget(prev, next command.Command) bool {
	if prev.Type() != next.Type() {
		return false
	}
	switch p := prev.(type) {
	case *command.Move:
		n, ok := next.(*command.Move)
		return ok && sameIDs(p.NodeIDs(), n.NodeIDs())
	case *command.Resize:
		n, ok := next.(*command.Resize)
		return ok && p.NodeID() == n.NodeID()
	case *command.StyleChange:
		n, ok := next.(*command.StyleChange)
		return ok && p.NodeID() == n.NodeID()
	default:
		return false
	}
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
	}
	return true
}

func estimateSize(cmd command.Command) int64 {
	b, err := json.Marshal(cmd.Serialize())
	if err != nil {
		return 0
	}
	return int64(len(b)) * 2
}

func (m *Manager) trim() {
	for len(m.undoStack) > m.options.MaxHistory {
		m.undoStack = m.undoStack[1:]
	}
	var total int64
	for _, e := range m.undoStack {
		total += e.memSize
	}
	for total > m.options.MaxMemoryBytes && len(m.undoStack) > 1 {
		total -= m.undoStack[0].memSize
		m.undoStack = m.undoStack[1:]
	}
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return len(m.redoStack) > 0 }

// Undo reverts the most recent command and moves it to the redo stack.
func (m *Manager) Undo() bool {
	if m.inFlight || len(m.undoStack) == 0 {
		return false
	}
	m.inFlight = true
	defer func() { m.inFlight = false }()

	e := m.undoStack[len(m.undoStack)-1]
	if !e.cmd.Undo(m.graph) {
		return false
	}
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, e)
	m.notify()
	return true
}

// Redo re-applies the most recently undone command.
func (m *Manager) Redo() bool {
	if m.inFlight || len(m.redoStack) == 0 {
		return false
	}
	m.inFlight = true
	defer func() { m.inFlight = false }()

	e := m.redoStack[len(m.redoStack)-1]
	if !e.cmd.Execute(m.graph) {
		return false
	}
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, e)
	m.notify()
	return true
}

// UndoDepth and RedoDepth report stack sizes, mostly for tests and UI.
func (m *Manager) UndoDepth() int { return len(m.undoStack) }
func (m *Manager) RedoDepth() int { return len(m.redoStack) }

// Subscribe registers fn to be called after every successful Execute,
// Undo, or Redo. It returns an unsubscribe function.
func (m *Manager) Subscribe(fn func()) func() {
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		if idx < len(m.listeners) {
			m.listeners[idx] = nil
		}
	}
}

func (m *Manager) notify() {
	for _, fn := range m.listeners {
		if fn != nil {
			fn()
		}
	}
}

// envelope is the versioned persistence record.
type envelope struct {
	Version   int                         `json:"version"`
	Timestamp int64                       `json:"timestamp"`
	Commands  []command.SerializedCommand `json:"commands"`
}

// Save serializes the undo stack as a versioned JSON envelope.
func (m *Manager) Save(timestamp int64) ([]byte, error) {
	serialized := make([]command.SerializedCommand, len(m.undoStack))
	for i, e := range m.undoStack {
		serialized[i] = e.cmd.Serialize()
	}
	return json.Marshal(envelope{Version: envelopeVersion, Timestamp: timestamp, Commands: serialized})
}

// Load replaces the undo stack with commands decoded from data, without
// re-executing them (they are assumed already reflected in the scene
// graph that was persisted alongside this envelope). It returns
// canvaserr.ErrVersionMismatch if the envelope's version isn't understood.
func (m *Manager) Load(data []byte, decode func(command.SerializedCommand) (command.Command, error)) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Version != envelopeVersion {
		return canvaserr.ErrVersionMismatch
	}
	undo := make([]entry, 0, len(env.Commands))
	now := m.options.Now()
	for _, sc := range env.Commands {
		cmd, err := decode(sc)
		if err != nil {
			return err
		}
		undo = append(undo, entry{cmd: cmd, at: now, memSize: estimateSize(cmd)})
	}
	m.undoStack = undo
	m.redoStack = nil
	m.notify()
	return nil
}
