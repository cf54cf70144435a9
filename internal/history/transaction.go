package history

import "github.com/canvasengine/canvascore/internal/command"

// transaction accumulates commands that execute immediately but are only
// pushed to history as a single Batch on commit.
type transaction struct {
	id       string
	commands []command.Command
}

// BeginTransaction opens a transaction. Only one drag or transaction may
// be open at a time. If id is empty, the fixed id "txn" is used.
func (m *Manager) BeginTransaction(id string) bool {
	if m.drag != nil || m.txn != nil {
		return false
	}
	if id == "" {
		id = "txn"
	}
	m.txn = &transaction{id: id}
	return true
}

// RecordInTransaction executes cmd immediately against the scene graph and
// appends it to the open transaction.
func (m *Manager) RecordInTransaction(cmd command.Command) bool {
	if m.txn == nil {
		return false
	}
	if !cmd.Execute(m.graph) {
		return false
	}
	m.txn.commands = append(m.txn.commands, cmd)
	return true
}

// CommitTransaction pushes the accumulated commands as a single Batch
// history entry and closes the transaction. An empty transaction commits
// as a no-op.
func (m *Manager) CommitTransaction(timestamp int64, description string) bool {
	if m.txn == nil {
		return false
	}
	txn := m.txn
	m.txn = nil
	if len(txn.commands) == 0 {
		return true
	}
	for i := len(txn.commands) - 1; i >= 0; i-- {
		txn.commands[i].Undo(m.graph)
	}
	batch := command.NewBatch(txn.id, timestamp, description, txn.commands)
	return m.Execute(batch)
}

// RollbackTransaction undoes everything recorded so far in the open
// transaction and discards it without touching history.
func (m *Manager) RollbackTransaction() bool {
	if m.txn == nil {
		return false
	}
	txn := m.txn
	m.txn = nil
	ok := true
	for i := len(txn.commands) - 1; i >= 0; i-- {
		if !txn.commands[i].Undo(m.graph) {
			ok = false
		}
	}
	return ok
}
