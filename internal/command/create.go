package command

import "github.com/canvasengine/canvascore/internal/scene"

// CreatePayload is the CREATE command's wire payload.
type CreatePayload struct {
	Node     *scene.Node `json:"node"`
	ParentID string      `json:"parentId"`
	Index    int         `json:"index"`
}

// Create inserts a new node into the graph. It stores a deep clone of the
// author-supplied node so later mutations to the caller's copy can't
// corrupt the undo/redo image, and inserts a fresh clone on every Execute
// so a redo after an intervening Undo never reuses a stale node reference.
type Create struct {
	id          string
	timestamp   int64
	description string
	payload     CreatePayload
}

// NewCreate clones node for storage; node.ParentID is ignored in favor of
// the explicit parentID/index.
func NewCreate(id string, timestamp int64, node *scene.Node, parentID string, index int) *Create {
	stored := node.Clone()
	stored.ParentID = parentID
	return &Create{
		id:          id,
		timestamp:   timestamp,
		description: "Create " + string(node.Type),
		payload:     CreatePayload{Node: stored, ParentID: parentID, Index: index},
	}
}

func (c *Create) Type() Type          { return TypeCreate }
func (c *Create) ID() string          { return c.id }
func (c *Create) Timestamp() int64    { return c.timestamp }
func (c *Create) Description() string { return c.description }

func (c *Create) Execute(g *scene.Graph) bool {
	return g.AddAt(c.payload.Node.Clone(), c.payload.ParentID, c.payload.Index)
}

// Undo removes the created node and anything added under it since
// creation.
func (c *Create) Undo(g *scene.Graph) bool {
	if _, ok := g.Get(c.payload.Node.ID); !ok {
		return false
	}
	removeSubtree(g, c.payload.Node.ID)
	return true
}

func (c *Create) Serialize() SerializedCommand {
	return SerializedCommand{
		Type:        TypeCreate,
		ID:          c.id,
		Timestamp:   c.timestamp,
		Description: c.description,
		Payload:     mustMarshal(c.payload),
	}
}

// NodeID returns the id of the node this command creates.
func (c *Create) NodeID() string { return c.payload.Node.ID }
