// Package geometry is a thin façade over the scene graph and the transform
// engine: it keeps the engine in sync with scene graph mutations and caches
// a per-node world-space geometry record.
package geometry

import (
	"math"

	"github.com/canvasengine/canvascore/internal/canvaslog"
	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/graph"
	"github.com/canvasengine/canvascore/internal/layout"
	"github.com/canvasengine/canvascore/internal/scene"
	"github.com/canvasengine/canvascore/internal/transform"
	"github.com/canvasengine/canvascore/internal/workflow"
)

// DisplayRect is a rounded, renderer-friendly box.
type DisplayRect struct {
	X, Y, Width, Height float64
	RotationDeg         float64
}

// NodeGeometry is the cached, world-space geometry record for one node.
type NodeGeometry struct {
	WorldBounds    geom.Rect
	WorldTransform geom.Matrix
	Display        DisplayRect
	WorldCorners   [4]geom.Point
	Center         geom.Point
}

// Service syncs a scene graph into a transform engine, runs the layout
// engine, and caches the resulting world-space geometry per node.
type Service struct {
	sceneGraph *scene.Graph
	engine     *transform.Engine
	layoutOpts layout.Options
	cache      map[string]NodeGeometry
}

// New returns a geometry service bound to the given scene graph and
// transform engine. Multiple documents can each own their own Service;
// there is no package-level singleton.
func New(sceneGraph *scene.Graph, engine *transform.Engine, layoutOpts layout.Options) *Service {
	return &Service{
		sceneGraph: sceneGraph,
		engine:     engine,
		layoutOpts: layoutOpts,
		cache:      make(map[string]NodeGeometry),
	}
}

// SyncFromSceneGraph re-registers every node's local transform and size,
// recomputes world transforms, resolves layout, and rebuilds the entire
// geometry cache. Stage order is declared as a dependency graph so it is
// data, not a hardcoded call chain.
func (s *Service) SyncFromSceneGraph() error {
	depGraph := graph.New()
	depGraph.AddEdge("register", "recompute-transforms")
	depGraph.AddEdge("recompute-transforms", "resolve-layout")
	depGraph.AddEdge("resolve-layout", "cache-geometry")

	order, err := depGraph.TopologicalSort()
	if err != nil {
		return err
	}

	stageFns := map[string]workflow.StageFunc{
		"register":              s.stageRegister,
		"recompute-transforms":  s.stageRecompute,
		"resolve-layout":        s.stageResolveLayout,
		"cache-geometry":        s.stageCacheGeometry,
	}

	pipeline := workflow.NewPipeline()
	for _, id := range order {
		pipeline.AddStage(string(id), stageFns[string(id)])
	}

	canvaslog.Debug(canvaslog.TagGeometry, "SyncFromSceneGraph: %d nodes", s.sceneGraph.Len())
	return pipeline.Execute()
}

func (s *Service) stageRegister() error {
	for n := range s.sceneGraph.Iterate() {
		s.engine.RegisterNode(n.ID, n.ParentID, n.LocalTransform, transform.Size{Width: n.Size.Width, Height: n.Size.Height})
	}
	return nil
}

func (s *Service) stageRecompute() error {
	s.engine.RecomputeAllWorldTransforms()
	return nil
}

func (s *Service) stageResolveLayout() error {
	results := layout.ComputeFromSceneGraph(s.sceneGraph, s.layoutOpts)
	for id, cl := range results {
		s.sceneGraph.Update(id, func(n *scene.Node) {
			n.LocalTransform[4] = cl.X
			n.LocalTransform[5] = cl.Y
			n.Size = scene.Size{Width: cl.Width, Height: cl.Height}
		})
		if n, ok := s.sceneGraph.Get(id); ok {
			s.engine.RegisterNode(id, n.ParentID, n.LocalTransform, transform.Size{Width: n.Size.Width, Height: n.Size.Height})
		}
	}
	s.engine.RecomputeAllWorldTransforms()
	return nil
}

func (s *Service) stageCacheGeometry() error {
	s.cache = make(map[string]NodeGeometry)
	for n := range s.sceneGraph.Iterate() {
		s.cache[n.ID] = s.buildGeometry(n)
	}
	return nil
}

func (s *Service) buildGeometry(n *scene.Node) NodeGeometry {
	world, _ := s.engine.GetWorldTransform(n.ID)
	n.WorldTransform = world
	bounds, _ := s.engine.GetWorldBounds(n.ID)
	corners, _ := s.engine.GetWorldCorners(n.ID)
	decomposed := geom.Decompose(world)

	display := DisplayRect{
		X:           bounds.X,
		Y:           bounds.Y,
		Width:       bounds.Width,
		Height:      bounds.Height,
		RotationDeg: decomposed.RotationRad * 180 / math.Pi,
	}
	if s.layoutOpts.RoundToPixels {
		r := geom.Rect{X: display.X, Y: display.Y, Width: display.Width, Height: display.Height}.Round()
		display.X, display.Y, display.Width, display.Height = r.X, r.Y, r.Width, r.Height
	}

	center := geom.Point{X: bounds.X + bounds.Width/2, Y: bounds.Y + bounds.Height/2}

	return NodeGeometry{
		WorldBounds:    bounds,
		WorldTransform: world,
		Display:        display,
		WorldCorners:   corners,
		Center:         center,
	}
}

// GetGeometry returns the cached geometry for a node.
func (s *Service) GetGeometry(id string) (NodeGeometry, bool) {
	g, ok := s.cache[id]
	return g, ok
}

// UpdateNodeTransform sets a node's local transform, recomputes just that
// subtree, and invalidates only that node's cache entry (and its
// descendants', since their world transforms also changed).
func (s *Service) UpdateNodeTransform(id string, m geom.Matrix) bool {
	if !s.engine.SetLocalTransform(id, m) {
		return false
	}
	if n, ok := s.sceneGraph.Get(id); ok {
		n.LocalTransform = m
	}
	s.engine.RecomputeSubtree(id)
	s.invalidateSubtreeCache(id)
	return true
}

func (s *Service) invalidateSubtreeCache(id string) {
	n, ok := s.sceneGraph.Get(id)
	if !ok {
		delete(s.cache, id)
		return
	}
	s.cache[id] = s.buildGeometry(n)
	for _, cid := range n.Children {
		s.invalidateSubtreeCache(cid)
	}
}

// GetSelectionFrame returns the world AABB enclosing every id's cached
// bounds, for a multi-node selection outline.
func (s *Service) GetSelectionFrame(ids []string) (geom.Rect, bool) {
	var result geom.Rect
	found := false
	for _, id := range ids {
		g, ok := s.cache[id]
		if !ok {
			continue
		}
		if !found {
			result = g.WorldBounds
			found = true
			continue
		}
		result = unionRect(result, g.WorldBounds)
	}
	return result, found
}

func unionRect(a, b geom.Rect) geom.Rect {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.X+a.Width, b.X+b.Width)
	maxY := math.Max(a.Y+a.Height, b.Y+b.Height)
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ScreenToWorld and WorldToScreen delegate to the transform engine's
// stateless conversions.
func (s *Service) ScreenToWorld(p geom.Point, offset geom.Point, scale float64) geom.Point {
	return transform.ScreenToWorld(p, offset, scale)
}

func (s *Service) WorldToScreen(p geom.Point, offset geom.Point, scale float64) geom.Point {
	return transform.WorldToScreen(p, offset, scale)
}
