// Package command implements the mutation primitives that are the only
// sanctioned way to change a scene graph: every command captures enough
// state at construction time to both execute and undo without further
// context, and serializes to a versioned JSON envelope for persistence.
package command

import (
	"encoding/json"

	"github.com/canvasengine/canvascore/internal/scene"
)

// Type discriminates the command tagged union.
type Type string

const (
	TypeMove        Type = "MOVE"
	TypeResize      Type = "RESIZE"
	TypeReparent    Type = "REPARENT"
	TypeStyleChange Type = "STYLE_CHANGE"
	TypeCreate      Type = "CREATE"
	TypeDelete      Type = "DELETE"
	TypeBatch       Type = "BATCH"
)

// Command is a mutation primitive: self-contained, replayable, and
// serializable.
type Command interface {
	Type() Type
	ID() string
	Timestamp() int64
	Description() string
	Execute(g *scene.Graph) bool
	Undo(g *scene.Graph) bool
	Serialize() SerializedCommand
}

// Mergeable commands can absorb an older command of the same concrete type
// that is already on top of the undo stack, producing a single replacement
// entry. The receiver is the newer command; prev is the older one. The
// result must undo back to prev's originally captured state, not the
// receiver's own (which, by construction time, already reflects prev's
// effect).
type Mergeable interface {
	MergeWithPrevious(prev Command) Command
}

// Rebaseable commands can swap in an earlier command's captured
// previous-state for their own, used to collapse a drag session into one
// history entry anchored at the session's starting snapshot.
type Rebaseable interface {
	RebaseTo(baseline Command) Command
}

// SerializedCommand is the plain-record wire shape every command yields.
type SerializedCommand struct {
	Type        Type            `json:"type"`
	ID          string          `json:"id"`
	Timestamp   int64           `json:"timestamp"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload"`
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic("command: payload must be JSON-encodable: " + err.Error())
	}
	return b
}

// snapshotSubtree returns deep clones of id and every descendant reachable
// from it right now, in parent-before-child order, so Undo/re-insertion
// can replay them without re-deriving structure.
func snapshotSubtree(g *scene.Graph, id string) []*scene.Node {
	node, ok := g.Get(id)
	if !ok {
		return nil
	}
	result := []*scene.Node{node.Clone()}
	for _, cid := range node.Children {
		result = append(result, snapshotSubtree(g, cid)...)
	}
	return result
}

// removeSubtree collects id and its current descendants, then removes them
// all from the graph. Collection happens before any mutation so the walk
// isn't affected by in-flight removals.
func removeSubtree(g *scene.Graph, id string) {
	ids := collectSubtreeIDs(g, id)
	for _, cid := range ids {
		g.Remove(cid)
	}
}

func collectSubtreeIDs(g *scene.Graph, id string) []string {
	node, ok := g.Get(id)
	if !ok {
		return nil
	}
	ids := []string{id}
	for _, cid := range node.Children {
		ids = append(ids, collectSubtreeIDs(g, cid)...)
	}
	return ids
}

// restoreSubtree re-inserts a parent-before-child ordered snapshot
// (produced by snapshotSubtree) into g, preserving each clone's recorded
// ParentID and position among its siblings.
func restoreSubtree(g *scene.Graph, snapshot []*scene.Node) {
	for _, n := range snapshot {
		index := len(snapshotChildrenSoFar(g, n.ParentID))
		clone := n.Clone()
		clone.Children = nil // rebuilt as each child is re-added below
		g.AddAt(clone, n.ParentID, index)
	}
}

func snapshotChildrenSoFar(g *scene.Graph, parentID string) []string {
	if parentID == "" {
		return g.Roots()
	}
	if p, ok := g.Get(parentID); ok {
		return p.Children
	}
	return nil
}
