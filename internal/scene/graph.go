package scene

import (
	"fmt"
	"iter"

	"github.com/canvasengine/canvascore/internal/geom"
)

// Graph is the canonical node store keyed by id. It enforces the
// parent/children invariants from the data model and notifies subscribers
// once per completed change.
//
// Graph is single-threaded cooperative, matching the rest of this module:
// it takes no internal locks and the caller is responsible for serializing
// access.
type Graph struct {
	nodes     map[string]*Node
	rootOrder []string
	insertOrder []string

	nextID uint32 // no atomic: single-threaded, like willow's nextNodeID

	listeners []func()
}

// NewGraph returns an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// NextNodeID returns the next auto-generated node id, for CREATE commands
// that don't supply one.
func (g *Graph) NextNodeID() string {
	g.nextID++
	return fmt.Sprintf("node-%d", g.nextID)
}

// Get returns the node with the given id.
func (g *Graph) Get(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Add inserts node into the graph under its ParentID (or as a root if
// ParentID is empty), at the end of the parent's children / root order.
// It fails if the id already exists or the parent doesn't exist. A
// zero-valued LocalTransform is stored as geom.Identity.
func (g *Graph) Add(n *Node) bool {
	if n == nil || n.ID == "" {
		return false
	}
	if _, exists := g.nodes[n.ID]; exists {
		return false
	}
	if n.LocalTransform == (geom.Matrix{}) {
		n.LocalTransform = geom.Identity
	}
	if n.ParentID != "" {
		parent, ok := g.nodes[n.ParentID]
		if !ok {
			return false
		}
		parent.Children = append(parent.Children, n.ID)
	} else {
		g.rootOrder = append(g.rootOrder, n.ID)
	}
	g.nodes[n.ID] = n
	g.insertOrder = append(g.insertOrder, n.ID)
	g.notifyChange()
	return true
}

// AddAt inserts node under parentID at the given child index (or as a root
// at the given root index if parentID is empty). Like Add, it stores a
// zero-valued LocalTransform as geom.Identity.
func (g *Graph) AddAt(n *Node, parentID string, index int) bool {
	if n == nil || n.ID == "" {
		return false
	}
	if _, exists := g.nodes[n.ID]; exists {
		return false
	}
	if n.LocalTransform == (geom.Matrix{}) {
		n.LocalTransform = geom.Identity
	}
	n.ParentID = parentID
	if parentID != "" {
		parent, ok := g.nodes[parentID]
		if !ok {
			return false
		}
		parent.Children = insertAt(parent.Children, index, n.ID)
	} else {
		g.rootOrder = insertAt(g.rootOrder, index, n.ID)
	}
	g.nodes[n.ID] = n
	g.insertOrder = append(g.insertOrder, n.ID)
	g.notifyChange()
	return true
}

func insertAt(s []string, index int, v string) []string {
	if index < 0 || index >= len(s) {
		return append(s, v)
	}
	s = append(s, "")
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}

func removeFrom(s []string, v string) ([]string, int) {
	for i, id := range s {
		if id == v {
			idx := i
			s = append(s[:i], s[i+1:]...)
			return s, idx
		}
	}
	return s, -1
}

// Remove deletes the node with the given id from its parent's children (or
// the root order), and from the node map. It does NOT remove descendants;
// the command layer is responsible for cascading deletes.
func (g *Graph) Remove(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	if n.ParentID != "" {
		if parent, ok := g.nodes[n.ParentID]; ok {
			parent.Children, _ = removeFrom(parent.Children, id)
		}
	} else {
		g.rootOrder, _ = removeFrom(g.rootOrder, id)
	}
	delete(g.nodes, id)
	g.insertOrder, _ = removeFrom(g.insertOrder, id)
	g.notifyChange()
	return n, true
}

// Update applies fn to the node with the given id in place and notifies
// subscribers. It returns false if the node doesn't exist.
func (g *Graph) Update(id string, fn func(*Node)) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	fn(n)
	g.notifyChange()
	return true
}

// IsAncestor reports whether candidate is an ancestor of n (or equal to n),
// walking the ParentID chain. Grounded on willow's cycle-detection helper
// of the same shape.
func (g *Graph) IsAncestor(candidateID, nodeID string) bool {
	cur := nodeID
	for cur != "" {
		if cur == candidateID {
			return true
		}
		n, ok := g.nodes[cur]
		if !ok {
			return false
		}
		cur = n.ParentID
	}
	return false
}

// Reparent splices id out of its current parent's children (or the root
// order) and into newParentID's children at newIndex (or the root order if
// newParentID is empty). It rejects moves that would create a cycle. On
// success it returns the previous parent id and index for undo.
func (g *Graph) Reparent(id, newParentID string, newIndex int) (prevParentID string, prevIndex int, ok bool) {
	n, exists := g.nodes[id]
	if !exists {
		return "", -1, false
	}
	if newParentID == id || g.IsAncestor(id, newParentID) {
		return "", -1, false
	}
	if newParentID != "" {
		if _, ok := g.nodes[newParentID]; !ok {
			return "", -1, false
		}
	}

	prevParentID = n.ParentID
	if prevParentID != "" {
		parent := g.nodes[prevParentID]
		parent.Children, prevIndex = removeFrom(parent.Children, id)
	} else {
		g.rootOrder, prevIndex = removeFrom(g.rootOrder, id)
	}

	n.ParentID = newParentID
	if newParentID != "" {
		newParent := g.nodes[newParentID]
		newParent.Children = insertAt(newParent.Children, newIndex, id)
	} else {
		g.rootOrder = insertAt(g.rootOrder, newIndex, id)
	}
	g.notifyChange()
	return prevParentID, prevIndex, true
}

// Roots returns the root node ids in insertion order.
func (g *Graph) Roots() []string {
	return append([]string(nil), g.rootOrder...)
}

// Iterate yields every node in the graph in insertion order.
func (g *Graph) Iterate() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, id := range g.insertOrder {
			n, ok := g.nodes[id]
			if !ok {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Subscribe registers fn to be called once per completed change. It returns
// an unsubscribe function.
func (g *Graph) Subscribe(fn func()) func() {
	g.listeners = append(g.listeners, fn)
	idx := len(g.listeners) - 1
	return func() {
		if idx < len(g.listeners) {
			g.listeners[idx] = nil
		}
	}
}

func (g *Graph) notifyChange() {
	for _, fn := range g.listeners {
		if fn != nil {
			fn()
		}
	}
}
