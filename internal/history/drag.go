package history

import "github.com/canvasengine/canvascore/internal/command"

// dragSession accumulates per-frame drag updates without pushing one
// history entry per pointer-move event: only the final command is kept.
//
// first is the session's opening update. Its captured previous-state is
// the drag's true starting point; every later update's own previous-state
// is mid-drag and unusable for that purpose, since it was captured after
// first (and any updates between) already mutated the graph.
type dragSession struct {
	commandType command.Type
	nodeIDs     []string
	first       command.Command
	last        command.Command
}

// StartDragSession begins a drag for the given node ids. Only one drag or
// transaction may be open at a time.
func (m *Manager) StartDragSession(commandType command.Type, nodeIDs []string) bool {
	if m.drag != nil || m.txn != nil {
		return false
	}
	m.drag = &dragSession{commandType: commandType, nodeIDs: append([]string(nil), nodeIDs...)}
	return true
}

// RecordDragUpdate applies cmd to the scene graph immediately (so the
// canvas stays live during the drag) without pushing it to history. Every
// update after the first undoes the session back to its starting state
// before applying, so cmd's own previous-state is irrelevant past the
// first call; only its target value is used.
func (m *Manager) RecordDragUpdate(cmd command.Command) bool {
	if m.drag == nil || cmd.Type() != m.drag.commandType {
		return false
	}
	if m.drag.first == nil {
		if !cmd.Execute(m.graph) {
			return false
		}
		m.drag.first = cmd
		m.drag.last = cmd
		return true
	}
	m.drag.first.Undo(m.graph)
	if !cmd.Execute(m.graph) {
		m.drag.last.Execute(m.graph)
		return false
	}
	m.drag.last = cmd
	return true
}

// FinalizeDragSession pushes a single history entry for the whole drag,
// anchored at the session's starting state, and ends the session.
func (m *Manager) FinalizeDragSession() bool {
	if m.drag == nil {
		return false
	}
	first, last := m.drag.first, m.drag.last
	m.drag = nil
	if last == nil {
		return false
	}
	final := last
	if rebaseable, ok := last.(command.Rebaseable); ok {
		final = rebaseable.RebaseTo(first)
	}
	final.Undo(m.graph)
	return m.Execute(final)
}

// CancelDragSession reverts the drag all the way back to its starting
// state and discards it without touching history.
func (m *Manager) CancelDragSession() bool {
	if m.drag == nil {
		return false
	}
	first, last := m.drag.first, m.drag.last
	m.drag = nil
	if last == nil {
		return true
	}
	final := last
	if rebaseable, ok := last.(command.Rebaseable); ok {
		final = rebaseable.RebaseTo(first)
	}
	return final.Undo(m.graph)
}
