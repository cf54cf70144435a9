package command

import "github.com/canvasengine/canvascore/internal/scene"

// DeletePayload is the DELETE command's wire payload. Snapshot holds a
// parent-before-child ordered deep clone of the deleted node and every
// descendant, captured at construction time, so Undo restores the exact
// subtree shape regardless of what else happens to the graph between
// Execute and Undo.
type DeletePayload struct {
	NodeID   string        `json:"nodeId"`
	ParentID string        `json:"parentId"`
	Index    int           `json:"index"`
	Snapshot []*scene.Node `json:"snapshot"`
}

// Delete removes a node and its full current subtree.
type Delete struct {
	id          string
	timestamp   int64
	description string
	payload     DeletePayload
}

// NewDelete snapshots nodeID and its descendants as they exist right now.
func NewDelete(g *scene.Graph, id string, timestamp int64, nodeID string) *Delete {
	var parentID string
	var index int
	if n, ok := g.Get(nodeID); ok {
		parentID = n.ParentID
		siblings := g.Roots()
		if parentID != "" {
			if p, ok := g.Get(parentID); ok {
				siblings = p.Children
			}
		}
		for i, sid := range siblings {
			if sid == nodeID {
				index = i
				break
			}
		}
	}
	return &Delete{
		id:          id,
		timestamp:   timestamp,
		description: "Delete",
		payload: DeletePayload{
			NodeID:   nodeID,
			ParentID: parentID,
			Index:    index,
			Snapshot: snapshotSubtree(g, nodeID),
		},
	}
}

func (c *Delete) Type() Type          { return TypeDelete }
func (c *Delete) ID() string          { return c.id }
func (c *Delete) Timestamp() int64    { return c.timestamp }
func (c *Delete) Description() string { return c.description }

// Execute removes the node and every descendant that currently exists,
// which may be more than was captured in the snapshot if nodes were added
// under it after construction.
func (c *Delete) Execute(g *scene.Graph) bool {
	if _, ok := g.Get(c.payload.NodeID); !ok {
		return false
	}
	removeSubtree(g, c.payload.NodeID)
	return true
}

// Undo restores the snapshotted subtree exactly as it was at construction
// time, including field values — later structural changes to descendants
// are not replayed.
func (c *Delete) Undo(g *scene.Graph) bool {
	if len(c.payload.Snapshot) == 0 {
		return false
	}
	root := c.payload.Snapshot[0].Clone()
	root.ParentID = c.payload.ParentID
	root.Children = nil // rebuilt by restoreSubtree
	if !g.AddAt(root, c.payload.ParentID, c.payload.Index) {
		return false
	}
	restoreSubtree(g, c.payload.Snapshot[1:])
	return true
}

func (c *Delete) Serialize() SerializedCommand {
	return SerializedCommand{
		Type:        TypeDelete,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(c.payload),
	}
}

// NodeID returns the id of the node this command deletes.
func (c *Delete) NodeID() string { return c.payload.NodeID }
