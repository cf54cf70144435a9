// Package transform implements local-to-world affine propagation over a set
// of registered nodes, plus coordinate conversions and snapping.
//
// The engine keeps its own flat node table rather than reading the scene
// graph directly — it is a pure geometry cache that the geometry service
// (internal/geometry) keeps in sync with the scene graph, per the façade
// split in the component design.
package transform

import (
	"github.com/canvasengine/canvascore/internal/canvaslog"
	"github.com/canvasengine/canvascore/internal/geom"
)

// Size is an intrinsic width/height pair.
type Size struct {
	Width, Height float64
}

type entry struct {
	id       string
	parentID string
	local    geom.Matrix
	world    geom.Matrix
	size     Size
	dirty    bool
}

// Engine propagates local transforms to world transforms and answers
// bounds/conversion queries against the cached result.
//
// Single-threaded cooperative: no internal locks, callers serialize access.
type Engine struct {
	nodes    map[string]*entry
	children map[string][]string
	roots    []string
}

// New returns an empty transform engine.
func New() *Engine {
	return &Engine{
		nodes:    make(map[string]*entry),
		children: make(map[string][]string),
	}
}

// RegisterNode registers or updates a node's local transform and size.
// Idempotent: re-registering the same id updates its fields and marks it
// dirty rather than creating a duplicate entry. Re-parenting an existing
// node via RegisterNode is supported and re-splices the children index.
func (e *Engine) RegisterNode(id, parentID string, local geom.Matrix, size Size) {
	if existing, ok := e.nodes[id]; ok {
		if existing.parentID != parentID {
			e.unlink(existing.id, existing.parentID)
			existing.parentID = parentID
			e.link(id, parentID)
		}
		existing.local = local
		existing.size = size
		existing.dirty = true
		return
	}
	e.nodes[id] = &entry{id: id, parentID: parentID, local: local, size: size, dirty: true}
	e.link(id, parentID)
}

func (e *Engine) link(id, parentID string) {
	if parentID == "" {
		e.roots = append(e.roots, id)
		return
	}
	e.children[parentID] = append(e.children[parentID], id)
}

func (e *Engine) unlink(id, parentID string) {
	if parentID == "" {
		for i, rid := range e.roots {
			if rid == id {
				e.roots = append(e.roots[:i], e.roots[i+1:]...)
				break
			}
		}
		return
	}
	siblings := e.children[parentID]
	for i, cid := range siblings {
		if cid == id {
			e.children[parentID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
}

// SetLocalTransform updates a node's local transform and marks its subtree
// dirty. Returns false if the node isn't registered.
func (e *Engine) SetLocalTransform(id string, m geom.Matrix) bool {
	n, ok := e.nodes[id]
	if !ok {
		return false
	}
	n.local = m
	n.dirty = true
	canvaslog.Debug(canvaslog.TagTransform, "SetLocalTransform id=%s", id)
	return true
}

// SetSize updates a node's intrinsic size and marks its subtree dirty.
func (e *Engine) SetSize(id string, size Size) bool {
	n, ok := e.nodes[id]
	if !ok {
		return false
	}
	n.size = size
	n.dirty = true
	return true
}

// RecomputeAllWorldTransforms runs a top-down, iterative BFS pass from the
// roots, recomputing world = world(parent) · local wherever a node or an
// ancestor is dirty, and reusing the cached value otherwise.
func (e *Engine) RecomputeAllWorldTransforms() {
	type item struct {
		id            string
		parentChanged bool
	}
	queue := make([]item, 0, len(e.nodes))
	for _, id := range e.roots {
		queue = append(queue, item{id: id})
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n, ok := e.nodes[cur.id]
		if !ok {
			continue
		}
		changed := cur.parentChanged || n.dirty
		if changed {
			parentWorld := geom.Identity
			if n.parentID != "" {
				if p, ok := e.nodes[n.parentID]; ok {
					parentWorld = p.world
				}
			}
			n.world = geom.Multiply(parentWorld, n.local)
			n.dirty = false
		}
		for _, cid := range e.children[cur.id] {
			queue = append(queue, item{id: cid, parentChanged: changed})
		}
	}
}

// RecomputeSubtree recomputes world transforms from rootID downward,
// without touching unrelated subtrees.
func (e *Engine) RecomputeSubtree(rootID string) {
	n, ok := e.nodes[rootID]
	if !ok {
		return
	}
	parentWorld := geom.Identity
	if n.parentID != "" {
		if p, ok := e.nodes[n.parentID]; ok {
			parentWorld = p.world
		}
	}
	e.recomputeFrom(rootID, parentWorld)
}

func (e *Engine) recomputeFrom(id string, parentWorld geom.Matrix) {
	n, ok := e.nodes[id]
	if !ok {
		return
	}
	n.world = geom.Multiply(parentWorld, n.local)
	n.dirty = false
	for _, cid := range e.children[id] {
		e.recomputeFrom(cid, n.world)
	}
}

// GetWorldTransform returns a node's cached world transform.
func (e *Engine) GetWorldTransform(id string) (geom.Matrix, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return geom.Identity, false
	}
	return n.world, true
}

// GetWorldBounds returns the AABB of the node's [0,0,w,h] rectangle under
// its world transform.
func (e *Engine) GetWorldBounds(id string) (geom.Rect, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return geom.Rect{}, false
	}
	return geom.WorldBounds(n.world, n.size.Width, n.size.Height), true
}

// GetWorldCorners returns the four corners of the node's rectangle in world
// space.
func (e *Engine) GetWorldCorners(id string) ([4]geom.Point, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return [4]geom.Point{}, false
	}
	return geom.Corners(n.world, n.size.Width, n.size.Height), true
}

// WorldToLocalPoint converts a world-space point into a node's local space.
func (e *Engine) WorldToLocalPoint(id string, p geom.Point) (geom.Point, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return geom.Point{}, false
	}
	inv := geom.Invert(n.world)
	return geom.TransformPoint(inv, p.X, p.Y), true
}

// LocalToWorldPoint converts a point in a node's local space into world
// space.
func (e *Engine) LocalToWorldPoint(id string, p geom.Point) (geom.Point, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return geom.Point{}, false
	}
	return geom.TransformPoint(n.world, p.X, p.Y), true
}

// ScreenToWorld converts a screen-space point to world space given a
// viewport offset and zoom scale.
func ScreenToWorld(p geom.Point, offset geom.Point, scale float64) geom.Point {
	if scale == 0 {
		scale = 1
	}
	return geom.Point{X: (p.X - offset.X) / scale, Y: (p.Y - offset.Y) / scale}
}

// WorldToScreen converts a world-space point to screen space given a
// viewport offset and zoom scale.
func WorldToScreen(p geom.Point, offset geom.Point, scale float64) geom.Point {
	return geom.Point{X: p.X*scale + offset.X, Y: p.Y*scale + offset.Y}
}

// Clear removes every registered node. Used between full scene resyncs.
func (e *Engine) Clear() {
	e.nodes = make(map[string]*entry)
	e.children = make(map[string][]string)
	e.roots = nil
}

// Len returns the number of registered nodes.
func (e *Engine) Len() int {
	return len(e.nodes)
}
