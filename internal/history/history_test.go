package history

import (
	"testing"
	"time"

	"github.com/canvasengine/canvascore/internal/command"
	"github.com/canvasengine/canvascore/internal/geom"
	"github.com/canvasengine/canvascore/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraphWithNode(id string) *scene.Graph {
	g := scene.NewGraph()
	g.Add(&scene.Node{ID: id, Type: scene.TypeShape, LocalTransform: geom.Identity})
	return g
}

func clockAt(times ...time.Time) func() time.Time {
	i := -1
	return func() time.Time {
		if i < len(times)-1 {
			i++
		}
		return times[i]
	}
}

// Scenario 4: MOVE coalescing within the coalesce window collapses to a
// single undo entry and restores the pre-drag position on undo.
func TestManager_CoalescesRapidMoves(t *testing.T) {
	g := newGraphWithNode("n")
	t0 := time.Unix(0, 0)
	m := New(g, Options{Now: clockAt(t0, t0.Add(100 * time.Millisecond))})

	first := command.NewMove(g, "cmd-1", 0, []string{"n"}, 5, 0)
	require.True(t, m.Execute(first))

	second := command.NewMove(g, "cmd-2", 0, []string{"n"}, 3, 0)
	require.True(t, m.Execute(second))

	assert.Equal(t, 1, m.UndoDepth(), "rapid moves on the same node within the coalesce window collapse to one entry")

	n, _ := g.Get("n")
	assert.Equal(t, 8.0, n.LocalTransform[4])

	require.True(t, m.Undo())
	n, _ = g.Get("n")
	assert.Equal(t, 0.0, n.LocalTransform[4], "undo of the coalesced entry restores the pre-drag position")

	require.True(t, m.Redo())
	n, _ = g.Get("n")
	assert.Equal(t, 8.0, n.LocalTransform[4])
}

func TestManager_DoesNotCoalesceAcrossWindow(t *testing.T) {
	g := newGraphWithNode("n")
	t0 := time.Unix(0, 0)
	m := New(g, Options{CoalesceWindow: 50 * time.Millisecond, Now: clockAt(t0, t0.Add(time.Second))})

	require.True(t, m.Execute(command.NewMove(g, "cmd-1", 0, []string{"n"}, 5, 0)))
	require.True(t, m.Execute(command.NewMove(g, "cmd-2", 0, []string{"n"}, 3, 0)))

	assert.Equal(t, 2, m.UndoDepth())
}

func TestManager_ExecuteClearsRedoStack(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})

	require.True(t, m.Execute(command.NewMove(g, "cmd-1", 0, []string{"n"}, 5, 0)))
	require.True(t, m.Undo())
	assert.True(t, m.CanRedo())

	require.True(t, m.Execute(command.NewResize(g, "cmd-2", 0, "n", "se", geom.Rect{Width: 1, Height: 1})))
	assert.False(t, m.CanRedo())
}

func TestManager_TrimsByMaxHistory(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{MaxHistory: 2, CoalesceWindow: time.Nanosecond})

	for i := 0; i < 5; i++ {
		time.Sleep(0)
		require.True(t, m.Execute(command.NewMove(g, "cmd", 0, []string{"n"}, 1, 0)))
	}
	assert.LessOrEqual(t, m.UndoDepth(), 2)
}

func TestManager_RefusesReentrantExecute(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})
	m.inFlight = true
	assert.False(t, m.Execute(command.NewMove(g, "cmd-1", 0, []string{"n"}, 1, 0)))
}

func TestManager_DragSessionFinalizePushesOneEntry(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})

	require.True(t, m.StartDragSession(command.TypeMove, []string{"n"}))
	require.True(t, m.RecordDragUpdate(command.NewMove(g, "drag-1", 0, []string{"n"}, 2, 0)))
	require.True(t, m.RecordDragUpdate(command.NewMove(g, "drag-2", 0, []string{"n"}, 9, 0)))

	n, _ := g.Get("n")
	assert.Equal(t, 9.0, n.LocalTransform[4], "intermediate drag updates are live on the graph")

	require.True(t, m.FinalizeDragSession())
	assert.Equal(t, 1, m.UndoDepth())

	require.True(t, m.Undo())
	n, _ = g.Get("n")
	assert.Equal(t, 0.0, n.LocalTransform[4])
}

func TestManager_DragSessionCancelReverts(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})

	require.True(t, m.StartDragSession(command.TypeMove, []string{"n"}))
	require.True(t, m.RecordDragUpdate(command.NewMove(g, "drag-1", 0, []string{"n"}, 50, 0)))
	require.True(t, m.CancelDragSession())

	n, _ := g.Get("n")
	assert.Equal(t, 0.0, n.LocalTransform[4])
	assert.Equal(t, 0, m.UndoDepth())
}

func TestManager_TransactionCommitsAsOneBatch(t *testing.T) {
	g := newGraphWithNode("n")
	g2 := g
	g2.Add(&scene.Node{ID: "m", Type: scene.TypeShape})
	hist := New(g, Options{})

	require.True(t, hist.BeginTransaction(""))
	require.True(t, hist.RecordInTransaction(command.NewMove(g, "c1", 0, []string{"n"}, 5, 0)))
	require.True(t, hist.RecordInTransaction(command.NewMove(g, "c2", 0, []string{"m"}, 7, 0)))
	require.True(t, hist.CommitTransaction(0, "move two"))

	assert.Equal(t, 1, hist.UndoDepth())

	require.True(t, hist.Undo())
	n, _ := g.Get("n")
	mNode, _ := g.Get("m")
	assert.Equal(t, 0.0, n.LocalTransform[4])
	assert.Equal(t, 0.0, mNode.LocalTransform[4])
}

func TestManager_TransactionRollback(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})

	require.True(t, m.BeginTransaction("txn"))
	require.True(t, m.RecordInTransaction(command.NewMove(g, "c1", 0, []string{"n"}, 5, 0)))
	require.True(t, m.RollbackTransaction())

	n, _ := g.Get("n")
	assert.Equal(t, 0.0, n.LocalTransform[4])
	assert.Equal(t, 0, m.UndoDepth())
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})
	require.True(t, m.Execute(command.NewMove(g, "c1", 0, []string{"n"}, 5, 0)))

	data, err := m.Save(12345)
	require.NoError(t, err)

	restored := New(g, Options{})
	require.NoError(t, restored.Load(data, command.Deserialize))
	assert.Equal(t, 1, restored.UndoDepth())

	require.True(t, restored.Undo())
	n, _ := g.Get("n")
	assert.Equal(t, 0.0, n.LocalTransform[4])
}

func TestManager_LoadRejectsVersionMismatch(t *testing.T) {
	g := newGraphWithNode("n")
	m := New(g, Options{})
	err := m.Load([]byte(`{"version":99,"commands":[]}`), func(sc command.SerializedCommand) (command.Command, error) {
		return nil, nil
	})
	require.Error(t, err)
}
