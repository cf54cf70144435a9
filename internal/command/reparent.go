package command

import "github.com/canvasengine/canvascore/internal/scene"

// ReparentPayload is the REPARENT command's wire payload.
type ReparentPayload struct {
	NodeID       string `json:"nodeId"`
	NewParentID  string `json:"newParentId"`
	NewIndex     int    `json:"newIndex"`
	PrevParentID string `json:"prevParentId"`
	PrevIndex    int    `json:"prevIndex"`
}

// Reparent moves a node to a new parent and index, rejecting moves that
// would create a cycle. The previous parent/index is captured at
// construction time so Undo is exact even if intervening commands also
// touched sibling order.
type Reparent struct {
	id          string
	timestamp   int64
	description string
	payload     ReparentPayload
	valid       bool
}

// NewReparent captures nodeID's current parent and sibling index.
func NewReparent(g *scene.Graph, id string, timestamp int64, nodeID, newParentID string, newIndex int) *Reparent {
	n, ok := g.Get(nodeID)
	valid := ok && newParentID != nodeID && !g.IsAncestor(nodeID, newParentID)
	var prevParentID string
	var prevIndex int
	if ok {
		prevParentID = n.ParentID
		siblings := n.Children
		if n.ParentID != "" {
			if p, ok := g.Get(n.ParentID); ok {
				siblings = p.Children
			}
		} else {
			siblings = g.Roots()
		}
		for i, sid := range siblings {
			if sid == nodeID {
				prevIndex = i
				break
			}
		}
	}
	return &Reparent{
		id:          id,
		timestamp:   timestamp,
		description: "Reparent",
		valid:       valid,
		payload: ReparentPayload{
			NodeID: nodeID, NewParentID: newParentID, NewIndex: newIndex,
			PrevParentID: prevParentID, PrevIndex: prevIndex,
		},
	}
}

func (c *Reparent) Type() Type          { return TypeReparent }
func (c *Reparent) ID() string          { return c.id }
func (c *Reparent) Timestamp() int64    { return c.timestamp }
func (c *Reparent) Description() string { return c.description }

// Execute fails (and leaves the graph untouched) if the move was already
// known to be invalid at construction, or if the graph rejects it now.
func (c *Reparent) Execute(g *scene.Graph) bool {
	if !c.valid {
		return false
	}
	_, _, ok := g.Reparent(c.payload.NodeID, c.payload.NewParentID, c.payload.NewIndex)
	return ok
}

func (c *Reparent) Undo(g *scene.Graph) bool {
	_, _, ok := g.Reparent(c.payload.NodeID, c.payload.PrevParentID, c.payload.PrevIndex)
	return ok
}

func (c *Reparent) Serialize() SerializedCommand {
	return SerializedCommand{
		Type:        TypeReparent,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(c.payload),
	}
}
