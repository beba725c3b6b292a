package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
)

func approxVec(a, b common.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestWorldPositionComposesParents(t *testing.T) {
	child := NewNode("child", WithPosition(1, 0, 0))
	root := NewNode("root", WithPosition(0, 5, 0), WithScale(2, 2, 2), WithChildren(child))

	if got, want := child.WorldPosition(), (common.Vec3{2, 5, 0}); !approxVec(got, want) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}
	if child.Root() != root {
		t.Error("Root() did not return the topmost node")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	a.AddChild(c)
	b.AddChild(c)

	if c.Parent() != b {
		t.Error("Parent() is not b after reparenting")
	}
	if got := len(a.Children()); got != 0 {
		t.Errorf("len(a.Children()) = %d, want 0", got)
	}
	if got := len(b.Children()); got != 1 {
		t.Errorf("len(b.Children()) = %d, want 1", got)
	}

	b.RemoveChild(c)
	if c.Parent() != nil {
		t.Error("Parent() after RemoveChild is not nil")
	}
}

func TestAddChildRejectsCycles(t *testing.T) {
	tests := []struct {
		name  string
		build func() (parent, child *Node)
	}{
		{"self", func() (*Node, *Node) {
			a := NewNode("a")
			return a, a
		}},
		{"parent", func() (*Node, *Node) {
			a, b := NewNode("a"), NewNode("b")
			a.AddChild(b)
			return b, a
		}},
		{"grandparent", func() (*Node, *Node) {
			a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
			a.AddChild(b)
			b.AddChild(c)
			return c, a
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, child := tt.build()
			root := child.Root()

			parent.AddChild(child)

			if parent.Parent() == child && child.Parent() == parent {
				t.Fatal("AddChild linked two nodes as each other's parent")
			}
			if got := parent.Root(); got != root {
				t.Errorf("Root() = %q, want %q", got.Name(), root.Name())
			}
			visited := 0
			root.Walk(func(*Node) bool {
				visited++
				return visited < 10
			})
			if visited >= 10 {
				t.Errorf("Walk visited %d nodes, want a finite tree", visited)
			}
		})
	}
}

func TestWalkSkipsDisabledSubtrees(t *testing.T) {
	leaf := NewNode("leaf")
	hidden := NewNode("hidden", WithEnabled(false), WithChildren(leaf))
	visible := NewNode("visible")
	root := NewNode("root", WithChildren(hidden, visible))

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name())
		return true
	})

	want := []string{"root", "visible"}
	if len(visited) != len(want) {
		t.Fatalf("Walk visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Walk visited %v, want %v", visited, want)
			break
		}
	}
}

func TestWalkPruneChildren(t *testing.T) {
	root := NewNode("root", WithChildren(NewNode("child")))
	count := 0
	root.Walk(func(*Node) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("Walk visited %d nodes, want 1", count)
	}
}
