package command

import "github.com/canvasengine/canvascore/internal/scene"

// MovePayload is the MOVE command's wire payload.
type MovePayload struct {
	NodeIDs  []string           `json:"nodeIds"`
	DX       float64            `json:"dx"`
	DY       float64            `json:"dy"`
	Previous map[string][2]float64 `json:"previous"`
}

// Move translates a set of nodes by a fixed delta, recording each node's
// prior local translation so Undo can restore exact positions instead of
// subtracting the delta back out (which would drift under repeated small
// moves).
type Move struct {
	id          string
	timestamp   int64
	description string
	payload     MovePayload
}

// NewMove captures the current local translation of every node in ids
// before any mutation happens.
func NewMove(g *scene.Graph, id string, timestamp int64, ids []string, dx, dy float64) *Move {
	prev := make(map[string][2]float64, len(ids))
	for _, nid := range ids {
		if n, ok := g.Get(nid); ok {
			prev[nid] = [2]float64{n.LocalTransform[4], n.LocalTransform[5]}
		}
	}
	return &Move{
		id:          id,
		timestamp:   timestamp,
		description: "Move",
		payload:     MovePayload{NodeIDs: ids, DX: dx, DY: dy, Previous: prev},
	}
}

func (c *Move) Type() Type          { return TypeMove }
func (c *Move) ID() string          { return c.id }
func (c *Move) Timestamp() int64    { return c.timestamp }
func (c *Move) Description() string { return c.description }

// Execute adds the delta to each node's local and world translation.
func (c *Move) Execute(g *scene.Graph) bool {
	ok := true
	for _, id := range c.payload.NodeIDs {
		moved := g.Update(id, func(n *scene.Node) {
			n.LocalTransform[4] += c.payload.DX
			n.LocalTransform[5] += c.payload.DY
			n.WorldTransform[4] += c.payload.DX
			n.WorldTransform[5] += c.payload.DY
		})
		ok = ok && moved
	}
	return ok
}

// Undo restores each node's exact pre-move translation.
func (c *Move) Undo(g *scene.Graph) bool {
	ok := true
	for id, pos := range c.payload.Previous {
		dx := pos[0]
		dy := pos[1]
		restored := g.Update(id, func(n *scene.Node) {
			worldDX := dx - n.LocalTransform[4]
			worldDY := dy - n.LocalTransform[5]
			n.LocalTransform[4] = dx
			n.LocalTransform[5] = dy
			n.WorldTransform[4] += worldDX
			n.WorldTransform[5] += worldDY
		})
		ok = ok && restored
	}
	return ok
}

func (c *Move) Serialize() SerializedCommand {
	return SerializedCommand{
		Type:        TypeMove,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(c.payload),
	}
}

// NodeIDs returns the set of node ids this command moves, used by the
// history manager's coalescing predicate.
func (c *Move) NodeIDs() []string { return c.payload.NodeIDs }

// MergeWithPrevious folds prev's delta into this one and keeps prev's
// captured positions, so the combined command undoes straight to the state
// before either move ran.
func (c *Move) MergeWithPrevious(prev Command) Command {
	p, ok := prev.(*Move)
	if !ok {
		return c
	}
	merged := *c
	merged.payload.DX = p.payload.DX + c.payload.DX
	merged.payload.DY = p.payload.DY + c.payload.DY
	merged.payload.Previous = p.payload.Previous
	return &merged
}

// RebaseTo swaps in baseline's captured positions, keeping this command's
// own delta. Used to finalize a drag session: each recorded update was
// applied against the session's starting positions (every update undoes
// the prior one before executing), so the last update's delta already
// represents the full drag; only its undo target needs to move back to the
// session's start.
func (c *Move) RebaseTo(baseline Command) Command {
	b, ok := baseline.(*Move)
	if !ok {
		return c
	}
	merged := *c
	merged.payload.Previous = b.payload.Previous
	return &merged
}
