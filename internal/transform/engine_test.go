package transform

import (
	"math"
	"testing"

	"github.com/canvasengine/canvascore/internal/geom"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEngine_RegisterAndRecompute(t *testing.T) {
	tests := []struct {
		name      string
		register  func(e *Engine)
		check     string
		wantWorld geom.Matrix
	}{
		{
			name: "root_world_equals_local",
			register: func(e *Engine) {
				e.RegisterNode("root", "", geom.Translation(10, 20), Size{100, 100})
			},
			check:     "root",
			wantWorld: geom.Translation(10, 20),
		},
		{
			name: "child_world_composes_with_parent",
			register: func(e *Engine) {
				e.RegisterNode("root", "", geom.Translation(10, 20), Size{100, 100})
				e.RegisterNode("child", "root", geom.Translation(5, 5), Size{10, 10})
			},
			check:     "child",
			wantWorld: geom.Translation(15, 25),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			tt.register(e)
			e.RecomputeAllWorldTransforms()
			got, ok := e.GetWorldTransform(tt.check)
			if !ok {
				t.Fatalf("GetWorldTransform(%s) missing", tt.check)
			}
			for i := range got {
				if !almostEqual(got[i], tt.wantWorld[i]) {
					t.Fatalf("world[%d] = %v, want %v", i, got[i], tt.wantWorld[i])
				}
			}
		})
	}
}

func TestEngine_DirtyShortCircuit(t *testing.T) {
	e := New()
	e.RegisterNode("root", "", geom.Translation(0, 0), Size{100, 100})
	e.RegisterNode("child", "root", geom.Translation(5, 5), Size{10, 10})
	e.RecomputeAllWorldTransforms()

	// Mutate only the child; the root's cached world must stay the same
	// object's values, and recompute must still pick up the child change.
	e.SetLocalTransform("child", geom.Translation(50, 50))
	e.RecomputeAllWorldTransforms()

	rootWorld, _ := e.GetWorldTransform("root")
	wantRoot := geom.Translation(0, 0)
	if rootWorld != wantRoot {
		t.Fatalf("root world changed unexpectedly: %v", rootWorld)
	}

	childWorld, _ := e.GetWorldTransform("child")
	wantChild := geom.Translation(50, 50)
	if childWorld != wantChild {
		t.Fatalf("child world = %v, want %v", childWorld, wantChild)
	}
}

func TestEngine_RegisterIsIdempotent(t *testing.T) {
	e := New()
	e.RegisterNode("a", "", geom.Identity, Size{10, 10})
	e.RegisterNode("a", "", geom.Translation(1, 1), Size{20, 20})
	if e.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after re-registering the same id", e.Len())
	}
}

func TestEngine_GetWorldBounds(t *testing.T) {
	e := New()
	e.RegisterNode("a", "", geom.Translation(10, 10), Size{50, 30})
	e.RecomputeAllWorldTransforms()

	bounds, ok := e.GetWorldBounds("a")
	if !ok {
		t.Fatal("GetWorldBounds(a) missing")
	}
	want := geom.Rect{X: 10, Y: 10, Width: 50, Height: 30}
	if bounds != want {
		t.Fatalf("GetWorldBounds() = %+v, want %+v", bounds, want)
	}
}

func TestEngine_PointConversions(t *testing.T) {
	e := New()
	e.RegisterNode("a", "", geom.Translation(10, 10), Size{50, 30})
	e.RecomputeAllWorldTransforms()

	world, ok := e.LocalToWorldPoint("a", geom.Point{X: 5, Y: 5})
	if !ok {
		t.Fatal("LocalToWorldPoint missing node")
	}
	if !almostEqual(world.X, 15) || !almostEqual(world.Y, 15) {
		t.Fatalf("LocalToWorldPoint() = %v, want {15 15}", world)
	}

	local, ok := e.WorldToLocalPoint("a", world)
	if !ok {
		t.Fatal("WorldToLocalPoint missing node")
	}
	if !almostEqual(local.X, 5) || !almostEqual(local.Y, 5) {
		t.Fatalf("WorldToLocalPoint() round trip = %v, want {5 5}", local)
	}
}

func TestScreenWorldConversions(t *testing.T) {
	offset := geom.Point{X: 100, Y: 50}
	scale := 2.0
	world := geom.Point{X: 10, Y: 10}

	screen := WorldToScreen(world, offset, scale)
	back := ScreenToWorld(screen, offset, scale)

	if !almostEqual(back.X, world.X) || !almostEqual(back.Y, world.Y) {
		t.Fatalf("ScreenToWorld(WorldToScreen(p)) = %v, want %v", back, world)
	}
}

func TestEngine_RecomputeSubtree(t *testing.T) {
	e := New()
	e.RegisterNode("root", "", geom.Translation(100, 100), Size{200, 200})
	e.RegisterNode("child", "root", geom.Translation(1, 1), Size{10, 10})
	e.RecomputeAllWorldTransforms()

	e.SetLocalTransform("child", geom.Translation(2, 2))
	e.RecomputeSubtree("child")

	world, _ := e.GetWorldTransform("child")
	want := geom.Translation(102, 102)
	if world != want {
		t.Fatalf("world after RecomputeSubtree = %v, want %v", world, want)
	}
}

func TestEngine_Snap_GridFallback(t *testing.T) {
	e := New()
	settings := SnapSettings{Grid: GridSettings{Enabled: true, Size: 10}, Threshold: 2}
	got, guides := e.Snap(geom.Point{X: 24, Y: 37}, nil, settings)
	if got.X != 20 || got.Y != 40 {
		t.Fatalf("Snap() = %v, want {20 40}", got)
	}
	if len(guides) != 0 {
		t.Fatalf("Snap() guides = %v, want none for grid-only snap", guides)
	}
}

func TestEngine_Snap_PeerEdge(t *testing.T) {
	e := New()
	e.RegisterNode("peer", "", geom.Translation(100, 0), Size{50, 50})
	e.RecomputeAllWorldTransforms()

	settings := SnapSettings{Threshold: 3}
	got, guides := e.Snap(geom.Point{X: 101, Y: 0}, nil, settings)
	if got.X != 100 {
		t.Fatalf("Snap().X = %v, want 100 (peer edge)", got.X)
	}
	if len(guides) == 0 {
		t.Fatal("Snap() should emit at least one guide for a peer-edge match")
	}
}
