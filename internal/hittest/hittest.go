// Package hittest implements depth-first, reverse-child-order point and
// rectangle hit testing over a scene graph, honoring visibility, lock, and
// clip-ancestor filtering.
//
// The reverse-child-order traversal — visit children topmost-first, then
// the node itself — is the same shape as a UI scene graph's reverse-order
// event propagation: later children paint on top, so they must be tested
// first.
package hittest

import (
	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/geometry"
	"github.com/canvasengine/canvascore/internal/scene"
)

// Result is one hit, with enough context to resolve ties or walk up.
type Result struct {
	ID          string
	Depth       int
	ParentChain []string
}

// Options filters which nodes participate in a hit test.
type Options struct {
	IncludeInvisible bool
	IncludeLocked    bool
	ExcludeIds       map[string]bool
	IncludeIds       map[string]bool // if non-nil, only these ids may match
}

// RectMode selects how a node's bounds must relate to the query rect.
type RectMode string

const (
	RectIntersect RectMode = "INTERSECT"
	RectContain   RectMode = "CONTAIN"
)

// Service answers hit-test queries against a scene graph using a geometry
// service's cached world bounds.
type Service struct {
	sceneGraph *scene.Graph
	geo        *geometry.Service
}

// New returns a hit-test service bound to the given scene graph and
// geometry service.
func New(sceneGraph *scene.Graph, geo *geometry.Service) *Service {
	return &Service{sceneGraph: sceneGraph, geo: geo}
}

// HitTestPoint returns every node containing p, topmost-first.
func (s *Service) HitTestPoint(p geom.Point, opts Options) []Result {
	var results []Result
	roots := s.sceneGraph.Roots()
	for i := len(roots) - 1; i >= 0; i-- {
		s.visitPoint(roots[i], p, opts, nil, &results)
	}
	return results
}

func (s *Service) visitPoint(id string, p geom.Point, opts Options, parentChain []string, results *[]Result) {
	node, ok := s.sceneGraph.Get(id)
	if !ok {
		return
	}
	if !opts.IncludeInvisible && !node.Visible {
		return
	}

	g, hasGeometry := s.geo.GetGeometry(id)
	if node.ClipsContent && hasGeometry && !g.WorldBounds.Contains(p) {
		return
	}

	chain := append(append([]string(nil), parentChain...), id)
	for i := len(node.Children) - 1; i >= 0; i-- {
		s.visitPoint(node.Children[i], p, opts, chain, results)
	}

	if opts.ExcludeIds != nil && opts.ExcludeIds[id] {
		return
	}
	if opts.IncludeIds != nil && !opts.IncludeIds[id] {
		return
	}
	if node.Locked && !opts.IncludeLocked {
		return
	}
	if !hasGeometry || !g.WorldBounds.Contains(p) {
		return
	}

	*results = append(*results, Result{ID: id, Depth: len(parentChain), ParentChain: parentChain})
}

// HitTestRect returns every node whose bounds relate to rect according to
// mode. Results are in depth-first post-order: a node's children (in
// children order) come before the node itself, and roots in root order.
func (s *Service) HitTestRect(rect geom.Rect, mode RectMode, opts Options) []Result {
	var results []Result
	for _, rootID := range s.sceneGraph.Roots() {
		s.visitRect(rootID, rect, mode, opts, nil, &results)
	}
	return results
}

func (s *Service) visitRect(id string, rect geom.Rect, mode RectMode, opts Options, parentChain []string, results *[]Result) {
	node, ok := s.sceneGraph.Get(id)
	if !ok {
		return
	}
	if !opts.IncludeInvisible && !node.Visible {
		return
	}

	g, hasGeometry := s.geo.GetGeometry(id)
	if node.ClipsContent && hasGeometry && !g.WorldBounds.Intersects(rect) {
		return
	}

	chain := append(append([]string(nil), parentChain...), id)
	for _, cid := range node.Children {
		s.visitRect(cid, rect, mode, opts, chain, results)
	}

	if opts.ExcludeIds != nil && opts.ExcludeIds[id] {
		return
	}
	if opts.IncludeIds != nil && !opts.IncludeIds[id] {
		return
	}
	if node.Locked && !opts.IncludeLocked {
		return
	}
	if !hasGeometry {
		return
	}

	matches := false
	switch mode {
	case RectContain:
		matches = rect.ContainsRect(g.WorldBounds)
	default:
		matches = rect.Intersects(g.WorldBounds)
	}
	if matches {
		*results = append(*results, Result{ID: id, Depth: len(parentChain), ParentChain: parentChain})
	}
}
