package command

import "github.com/canvasengine/canvascore/internal/scene"

// Batch groups several commands so they execute and undo as one history
// entry.
type Batch struct {
	id          string
	timestamp   int64
	description string
	commands    []Command
}

// NewBatch groups commands under a single history entry.
func NewBatch(id string, timestamp int64, description string, commands []Command) *Batch {
	return &Batch{id: id, timestamp: timestamp, description: description, commands: commands}
}

func (c *Batch) Type() Type          { return TypeBatch }
func (c *Batch) ID() string          { return c.id }
func (c *Batch) Timestamp() int64    { return c.timestamp }
func (c *Batch) Description() string { return c.description }

// Execute runs every sub-command in order. If one fails, everything
// already executed is rolled back via Undo and Execute reports failure.
func (c *Batch) Execute(g *scene.Graph) bool {
	for i, cmd := range c.commands {
		if cmd.Execute(g) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			c.commands[j].Undo(g)
		}
		return false
	}
	return true
}

// Undo reverses every sub-command in reverse order. A sub-command that
// fails to undo is skipped rather than aborting the rest, since the batch
// is already committed history and partial recovery beats none.
func (c *Batch) Undo(g *scene.Graph) bool {
	ok := true
	for i := len(c.commands) - 1; i >= 0; i-- {
		if !c.commands[i].Undo(g) {
			ok = false
		}
	}
	return ok
}

func (c *Batch) Serialize() SerializedCommand {
	entries := make([]SerializedCommand, len(c.commands))
	for i, cmd := range c.commands {
		entries[i] = cmd.Serialize()
	}
	return SerializedCommand{
		Type:        TypeBatch,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(entries),
	}
}

// Commands returns the batch's sub-commands in execution order.
func (c *Batch) Commands() []Command { return c.commands }
