package command

import (
	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/scene"
)

// ResizePayload is the RESIZE command's wire payload.
type ResizePayload struct {
	NodeID   string    `json:"nodeId"`
	Handle   string    `json:"handle"`
	Bounds   geom.Rect `json:"bounds"`
	Previous geom.Rect `json:"previous"`
}

// Resize sets a node's size and local position to a new value, recording
// the prior bounds for undo.
type Resize struct {
	id          string
	timestamp   int64
	description string
	payload     ResizePayload
}

// NewResize captures node's current size/position as the previous bounds.
func NewResize(g *scene.Graph, id string, timestamp int64, nodeID, handle string, bounds geom.Rect) *Resize {
	var previous geom.Rect
	if n, ok := g.Get(nodeID); ok {
		previous = geom.Rect{X: n.LocalTransform[4], Y: n.LocalTransform[5], Width: n.Size.Width, Height: n.Size.Height}
	}
	return &Resize{
		id:          id,
		timestamp:   timestamp,
		description: "Resize",
		payload:     ResizePayload{NodeID: nodeID, Handle: handle, Bounds: bounds, Previous: previous},
	}
}

func (c *Resize) Type() Type          { return TypeResize }
func (c *Resize) ID() string          { return c.id }
func (c *Resize) Timestamp() int64    { return c.timestamp }
func (c *Resize) Description() string { return c.description }

func (c *Resize) apply(g *scene.Graph, bounds geom.Rect) bool {
	return g.Update(c.payload.NodeID, func(n *scene.Node) {
		n.LocalTransform[4] = bounds.X
		n.LocalTransform[5] = bounds.Y
		n.Size.Width = bounds.Width
		n.Size.Height = bounds.Height
	})
}

func (c *Resize) Execute(g *scene.Graph) bool { return c.apply(g, c.payload.Bounds) }
func (c *Resize) Undo(g *scene.Graph) bool    { return c.apply(g, c.payload.Previous) }

func (c *Resize) Serialize() SerializedCommand {
	return SerializedCommand{
		Type:        TypeResize,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(c.payload),
	}
}

// NodeID returns the resized node's id, used by the history manager's
// coalescing predicate.
func (c *Resize) NodeID() string { return c.payload.NodeID }

// MergeWithPrevious keeps this command's target bounds and prev's
// originally captured bounds, since RESIZE stores absolute bounds rather
// than a delta.
func (c *Resize) MergeWithPrevious(prev Command) Command { return c.RebaseTo(prev) }

// RebaseTo swaps in baseline's captured bounds, keeping this command's own
// target bounds.
func (c *Resize) RebaseTo(baseline Command) Command {
	b, ok := baseline.(*Resize)
	if !ok {
		return c
	}
	merged := *c
	merged.payload.Previous = b.payload.Previous
	return &merged
}
