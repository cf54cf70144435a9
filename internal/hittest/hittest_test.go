package hittest

import (
	"testing"

	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/geometry"
	"github.com/canvasengine/canvascore/internal/layout"
	"github.com/canvasengine/canvascore/internal/scene"
	"github.com/canvasengine/canvascore/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, g *scene.Graph) *Service {
	t.Helper()
	geo := geometry.New(g, transform.New(), layout.Options{})
	require.NoError(t, geo.SyncFromSceneGraph())
	return New(g, geo)
}

// Scenario 6: hit-test z-order.
func TestHitTestPoint_ZOrder(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "root", Type: scene.TypeFrame, Visible: true, Size: scene.Size{Width: 200, Height: 200}})
	g.Add(&scene.Node{ID: "s1", ParentID: "root", Type: scene.TypeShape, Visible: true, Size: scene.Size{Width: 100, Height: 100}})
	g.Add(&scene.Node{ID: "s2", ParentID: "root", Type: scene.TypeShape, Visible: true, Size: scene.Size{Width: 100, Height: 100}})

	svc := newService(t, g)
	results := svc.HitTestPoint(geom.Point{X: 50, Y: 50}, Options{})

	require.NotEmpty(t, results)
	assert.Equal(t, "s2", results[0].ID, "later child paints on top and must hit first")
}

func TestHitTestPoint_SkipsInvisible(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "root", Type: scene.TypeFrame, Visible: true, Size: scene.Size{Width: 100, Height: 100}})
	g.Add(&scene.Node{ID: "hidden", ParentID: "root", Type: scene.TypeShape, Visible: false, Size: scene.Size{Width: 100, Height: 100}})

	svc := newService(t, g)
	results := svc.HitTestPoint(geom.Point{X: 50, Y: 50}, Options{})

	for _, r := range results {
		assert.NotEqual(t, "hidden", r.ID)
	}
}

func TestHitTestPoint_ClipsContentExcludesOutsideChild(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "frame", Type: scene.TypeFrame, Visible: true, ClipsContent: true, Size: scene.Size{Width: 50, Height: 50}})
	g.Add(&scene.Node{ID: "overflow", ParentID: "frame", Type: scene.TypeShape, Visible: true, LocalTransform: geom.Translation(100, 100), Size: scene.Size{Width: 50, Height: 50}})

	svc := newService(t, g)
	results := svc.HitTestPoint(geom.Point{X: 125, Y: 125}, Options{})

	assert.Empty(t, results, "child outside a clipping ancestor's bounds must not be hit")
}

func TestHitTestPoint_LockedExcludedByDefault(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "locked", Type: scene.TypeShape, Visible: true, Locked: true, Size: scene.Size{Width: 100, Height: 100}})

	svc := newService(t, g)
	results := svc.HitTestPoint(geom.Point{X: 50, Y: 50}, Options{})
	assert.Empty(t, results)

	results = svc.HitTestPoint(geom.Point{X: 50, Y: 50}, Options{IncludeLocked: true})
	assert.Len(t, results, 1)
}

func TestFindSelectableNode_SkipsGroups(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "group", Type: scene.TypeGroup, Visible: true, Size: scene.Size{Width: 100, Height: 100}})
	g.Add(&scene.Node{ID: "shape", ParentID: "group", Type: scene.TypeShape, Visible: true, Size: scene.Size{Width: 100, Height: 100}})

	svc := newService(t, g)
	id, ok := svc.FindSelectableNode(geom.Point{X: 50, Y: 50}, Options{})
	require.True(t, ok)
	assert.Equal(t, "shape", id)
}

func TestIsDescendantOf(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "root", Type: scene.TypeFrame, Visible: true})
	g.Add(&scene.Node{ID: "child", ParentID: "root", Type: scene.TypeShape, Visible: true})

	svc := newService(t, g)
	assert.True(t, svc.IsDescendantOf("child", "root"))
	assert.False(t, svc.IsDescendantOf("root", "child"))
	assert.False(t, svc.IsDescendantOf("root", "root"))
}

func TestHitTestRect_Modes(t *testing.T) {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: "a", Type: scene.TypeShape, Visible: true, Size: scene.Size{Width: 50, Height: 50}})

	svc := newService(t, g)

	intersecting := svc.HitTestRect(geom.Rect{X: 25, Y: 25, Width: 100, Height: 100}, RectIntersect, Options{})
	assert.Len(t, intersecting, 1)

	containing := svc.HitTestRect(geom.Rect{X: 25, Y: 25, Width: 100, Height: 100}, RectContain, Options{})
	assert.Empty(t, containing, "rect does not fully contain the 50x50 node")

	containing = svc.HitTestRect(geom.Rect{X: -10, Y: -10, Width: 200, Height: 200}, RectContain, Options{})
	assert.Len(t, containing, 1)
}
