package command

import "github.com/canvasengine/canvascore/internal/scene"

// StyleChangePayload is the STYLE_CHANGE command's wire payload. Next and
// Previous are full Styles snapshots: the merge (shallow for scalars, deep
// replace for list fields) happens once at construction time, so Execute
// and Undo are plain, serializable swaps rather than replaying an
// unserializable merge closure.
type StyleChangePayload struct {
	NodeID   string       `json:"nodeId"`
	Next     scene.Styles `json:"next"`
	Previous scene.Styles `json:"previous"`
}

// StyleChange replaces a node's paint styling.
type StyleChange struct {
	id          string
	timestamp   int64
	description string
	payload     StyleChangePayload
}

// NewStyleChange captures node's current styles and computes the merged
// result of applying changes on top of them. Fills, Strokes, and Effects
// are deep-replaced when present in changes; Opacity, BlendMode, and Text
// are shallow-merged.
func NewStyleChange(g *scene.Graph, id string, timestamp int64, nodeID string, changes scene.Styles, changed StyleFields) *StyleChange {
	var prevClone scene.Styles
	if n, ok := g.Get(nodeID); ok {
		prevClone = cloneStyles(n.Styles)
	}
	next := cloneStyles(prevClone)
	if changed.Fills {
		next.Fills = append([]scene.Fill(nil), changes.Fills...)
	}
	if changed.Strokes {
		next.Strokes = append([]scene.Stroke(nil), changes.Strokes...)
	}
	if changed.Effects {
		next.Effects = append([]scene.Effect(nil), changes.Effects...)
	}
	if changed.CornerRadius {
		next.CornerRadius = changes.CornerRadius
	}
	if changed.Opacity {
		next.Opacity = changes.Opacity
	}
	if changed.BlendMode {
		next.BlendMode = changes.BlendMode
	}
	if changed.Text {
		next.Text = changes.Text
	}
	return &StyleChange{
		id:          id,
		timestamp:   timestamp,
		description: "Change style",
		payload:     StyleChangePayload{NodeID: nodeID, Next: next, Previous: prevClone},
	}
}

// StyleFields marks which fields of a StyleChange's changes argument were
// actually supplied, distinguishing "leave unset" from "set to zero value".
type StyleFields struct {
	Fills        bool
	Strokes      bool
	Effects      bool
	CornerRadius bool
	Opacity      bool
	BlendMode    bool
	Text         bool
}

func cloneStyles(s scene.Styles) scene.Styles {
	n := &scene.Node{Styles: s}
	return n.Clone().Styles
}

func (c *StyleChange) Type() Type          { return TypeStyleChange }
func (c *StyleChange) ID() string          { return c.id }
func (c *StyleChange) Timestamp() int64    { return c.timestamp }
func (c *StyleChange) Description() string { return c.description }

func (c *StyleChange) Execute(g *scene.Graph) bool {
	return g.Update(c.payload.NodeID, func(n *scene.Node) { n.Styles = cloneStyles(c.payload.Next) })
}

func (c *StyleChange) Undo(g *scene.Graph) bool {
	return g.Update(c.payload.NodeID, func(n *scene.Node) { n.Styles = cloneStyles(c.payload.Previous) })
}

func (c *StyleChange) Serialize() SerializedCommand {
	return SerializedCommand{
		Type:        TypeStyleChange,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(c.payload),
	}
}

// NodeID returns the styled node's id, used by the history manager's
// coalescing predicate.
func (c *StyleChange) NodeID() string { return c.payload.NodeID }

// MergeWithPrevious keeps this command's merged Next (already computed
// against the live styles prev left behind) and prev's originally captured
// Previous.
func (c *StyleChange) MergeWithPrevious(prev Command) Command { return c.RebaseTo(prev) }

// RebaseTo swaps in baseline's captured Previous, keeping this command's
// own Next.
func (c *StyleChange) RebaseTo(baseline Command) Command {
	b, ok := baseline.(*StyleChange)
	if !ok {
		return c
	}
	merged := *c
	merged.payload.Previous = b.payload.Previous
	return &merged
}
