// Package canvascore is a headless design-canvas engine: a scene graph,
// a layout and transform pipeline, hit testing, and undo/redo, with no UI
// or rendering concerns of its own.
package canvascore

import (
	"fmt"

	"github.com/canvasengine/canvascore/internal/command"
	"github.com/canvasengine/canvascore/internal/draworder"
	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/geometry"
	"github.com/canvasengine/canvascore/internal/history"
	"github.com/canvasengine/canvascore/internal/hittest"
	"github.com/canvasengine/canvascore/internal/layout"
	"github.com/canvasengine/canvascore/internal/scene"
	"github.com/canvasengine/canvascore/internal/transform"
)

// Document is one independent canvas: its own scene graph, geometry
// pipeline, hit tester, and undo history. Nothing in this package is a
// singleton — a process may host as many Documents as it likes.
type Document struct {
	graph    *scene.Graph
	engine   *transform.Engine
	geometry *geometry.Service
	hit      *hittest.Service
	history  *history.Manager

	idSeq int64
}

// Options configures a new Document.
type Options struct {
	Layout  layout.Options
	History history.Options
}

// NewDocument returns an empty Document.
func NewDocument(opts Options) *Document {
	g := scene.NewGraph()
	engine := transform.New()
	geo := geometry.New(g, engine, opts.Layout)
	return &Document{
		graph:    g,
		engine:   engine,
		geometry: geo,
		hit:      hittest.New(g, geo),
		history:  history.New(g, opts.History),
	}
}

// GetNode returns the node record with the given id.
func (d *Document) GetNode(id string) (*scene.Node, bool) { return d.graph.Get(id) }

// Roots returns the root node ids in insertion order.
func (d *Document) Roots() []string { return d.graph.Roots() }

// Iterate yields every node in the document in insertion order.
func (d *Document) Iterate() func(func(*scene.Node) bool) { return d.graph.Iterate() }

// NextNodeID returns the next auto-generated node id.
func (d *Document) NextNodeID() string { return d.graph.NextNodeID() }

// NextCommandID returns a fresh id for a new command, for callers that
// don't supply their own.
func (d *Document) NextCommandID() string {
	d.idSeq++
	return fmt.Sprintf("cmd-%d", d.idSeq)
}

// --- Command dispatch -------------------------------------------------

// Execute runs cmd through the undo history and re-syncs geometry if it
// succeeded. It returns false without changing anything if cmd's
// preconditions fail (e.g. a REPARENT that would create a cycle).
func (d *Document) Execute(cmd command.Command) bool {
	if !d.history.Execute(cmd) {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

// Undo reverts the most recent command and re-syncs geometry.
func (d *Document) Undo() bool {
	if !d.history.Undo() {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

// Redo re-applies the most recently undone command and re-syncs geometry.
func (d *Document) Redo() bool {
	if !d.history.Redo() {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

func (d *Document) CanUndo() bool { return d.history.CanUndo() }
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// StartDragSession, RecordDragUpdate, FinalizeDragSession, and
// CancelDragSession delegate to the history manager; the last three then
// re-sync geometry so the canvas reflects live drag state.
func (d *Document) StartDragSession(t command.Type, ids []string) bool {
	return d.history.StartDragSession(t, ids)
}

func (d *Document) RecordDragUpdate(cmd command.Command) bool {
	if !d.history.RecordDragUpdate(cmd) {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

func (d *Document) FinalizeDragSession() bool {
	if !d.history.FinalizeDragSession() {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

func (d *Document) CancelDragSession() bool {
	if !d.history.CancelDragSession() {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

// BeginTransaction, RecordInTransaction, CommitTransaction, and
// RollbackTransaction delegate to the history manager.
func (d *Document) BeginTransaction(id string) bool { return d.history.BeginTransaction(id) }

func (d *Document) RecordInTransaction(cmd command.Command) bool {
	if !d.history.RecordInTransaction(cmd) {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

func (d *Document) CommitTransaction(timestamp int64, description string) bool {
	if !d.history.CommitTransaction(timestamp, description) {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

func (d *Document) RollbackTransaction() bool {
	if !d.history.RollbackTransaction() {
		return false
	}
	d.geometry.SyncFromSceneGraph()
	return true
}

// Subscribe registers fn to be called after every successful Execute,
// Undo, or Redo.
func (d *Document) Subscribe(fn func()) func() { return d.history.Subscribe(fn) }

// --- Geometry -----------------------------------------------------------

// SyncFromSceneGraph re-runs the full transform/layout/geometry pipeline.
// Exported for callers that mutate the scene graph directly (outside the
// command/history layer) and need to force a resync.
func (d *Document) SyncFromSceneGraph() error { return d.geometry.SyncFromSceneGraph() }

func (d *Document) GetGeometry(id string) (geometry.NodeGeometry, bool) {
	return d.geometry.GetGeometry(id)
}

func (d *Document) GetSelectionFrame(ids []string) (geom.Rect, bool) {
	return d.geometry.GetSelectionFrame(ids)
}

func (d *Document) ScreenToWorld(p, offset geom.Point, scale float64) geom.Point {
	return d.geometry.ScreenToWorld(p, offset, scale)
}

func (d *Document) WorldToScreen(p, offset geom.Point, scale float64) geom.Point {
	return d.geometry.WorldToScreen(p, offset, scale)
}

// --- Hit testing ----------------------------------------------------

func (d *Document) HitTest(p geom.Point, opts hittest.Options) []hittest.Result {
	return d.hit.HitTestPoint(p, opts)
}

func (d *Document) FindNodesInRect(rect geom.Rect, mode hittest.RectMode, opts hittest.Options) []hittest.Result {
	return d.hit.HitTestRect(rect, mode, opts)
}

func (d *Document) FindSelectableNode(p geom.Point, opts hittest.Options) (string, bool) {
	return d.hit.FindSelectableNode(p, opts)
}

// --- Draw order -----------------------------------------------------

// DrawOrder returns the painter's-algorithm linearization of the current
// scene, with cached world-space geometry attached to each box.
func (d *Document) DrawOrder() []draworder.ResolvedBox {
	return draworder.Project(d.graph, d.geometry)
}

// --- Persistence ------------------------------------------------------

func (d *Document) SaveHistory(timestamp int64) ([]byte, error) { return d.history.Save(timestamp) }

func (d *Document) LoadHistory(data []byte) error {
	return d.history.Load(data, command.Deserialize)
}
