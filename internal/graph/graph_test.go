package graph

import "testing"

func TestTopologicalSort(t *testing.T) {
	tests := []struct {
		name    string
		build   func(g *Graph)
		wantErr bool
	}{
		{
			name: "linear_chain",
			build: func(g *Graph) {
				g.AddEdge("a", "b")
				g.AddEdge("b", "c")
			},
			wantErr: false,
		},
		{
			name: "cycle",
			build: func(g *Graph) {
				g.AddEdge("a", "b")
				g.AddEdge("b", "a")
			},
			wantErr: true,
		},
		{
			name:    "empty_graph",
			build:   func(g *Graph) {},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			tt.build(g)
			order, err := g.TopologicalSort()
			if (err != nil) != tt.wantErr {
				t.Fatalf("TopologicalSort() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				positions := make(map[NodeID]int, len(order))
				for i, id := range order {
					positions[id] = i
				}
				for from, tos := range g.edges {
					for _, to := range tos {
						if positions[from] >= positions[to] {
							t.Fatalf("order violates edge %s -> %s: %v", from, to, order)
						}
					}
				}
			}
		})
	}
}

func TestGraph_IsDAG(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	if !g.IsDAG() {
		t.Fatal("IsDAG() = false for an acyclic graph")
	}
	g.AddEdge("b", "a")
	if g.IsDAG() {
		t.Fatal("IsDAG() = true for a cyclic graph")
	}
}

func TestGraph_Clear(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.Clear()
	if g.NodeCount() != 0 {
		t.Fatalf("NodeCount() after Clear() = %d, want 0", g.NodeCount())
	}
}

func TestGraph_GetDependents(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	deps := g.GetDependents("a")
	if len(deps) != 2 {
		t.Fatalf("GetDependents(a) = %v, want 2 entries", deps)
	}
}
