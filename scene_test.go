package canopy

import "testing"

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
	if s.Root().Material != nil {
		t.Error("root should be a group")
	}
}

func TestSceneContains(t *testing.T) {
	s := NewScene()
	a := NewGroup("a")
	s.Insert(s.Root(), a)
	orphan := NewGroup("orphan")

	if !s.Contains(s.Root()) {
		t.Error("scene should contain its root")
	}
	if !s.Contains(a) {
		t.Error("scene should contain inserted node")
	}
	if s.Contains(orphan) {
		t.Error("scene should not contain orphan")
	}
	if s.Contains(nil) {
		t.Error("scene should not contain nil")
	}
	a.Dispose()
	if s.Contains(a) {
		t.Error("scene should not contain disposed node")
	}
}

// --- Signals ---

func TestSceneInsertSignal(t *testing.T) {
	s := NewScene()
	var got []NodeInsertedEvent
	s.OnNodeInserted(func(e NodeInsertedEvent) { got = append(got, e) })

	a := NewGroup("a")
	s.Insert(s.Root(), a)

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Node != a || got[0].Parent != s.Root() {
		t.Errorf("event = %+v", got[0])
	}
	if a.Parent != s.Root() {
		t.Error("a should be attached under root")
	}
}

func TestSceneRemoveSignalBeforeDetach(t *testing.T) {
	s := NewScene()
	a := NewGroup("a")
	s.Insert(s.Root(), a)

	var attached bool
	calls := 0
	s.OnNodeRemoving(func(e NodeRemovingEvent) {
		calls++
		attached = e.Node.Parent == s.Root()
	})
	s.Remove(a)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if !attached {
		t.Error("node should still be attached when NodeRemoving fires")
	}
	if a.Parent != nil {
		t.Error("node should be detached after Remove")
	}
}

func TestSceneUpdateSignal(t *testing.T) {
	s := NewScene()
	a := NewGroup("a")
	s.Insert(s.Root(), a)

	var got *Node
	s.OnNodeUpdated(func(e NodeUpdatedEvent) { got = e.Node })
	s.Update(a)
	if got != a {
		t.Errorf("updated node = %v, want a", got)
	}
}

func TestSceneReplace(t *testing.T) {
	s := NewScene()
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	s.Insert(s.Root(), a)
	s.Insert(s.Root(), b)
	s.Insert(a, c)

	var ev NodeReplacedEvent
	s.OnNodeReplaced(func(e NodeReplacedEvent) { ev = e })

	r := NewGroup("r")
	s.Replace(a, r)

	if ev.Old != a || ev.New != r {
		t.Errorf("event = %+v", ev)
	}
	if s.Root().ChildAt(0) != r || s.Root().ChildAt(1) != b {
		t.Error("replacement should take the old node's slot")
	}
	if r.Parent != s.Root() || a.Parent != nil {
		t.Error("parent links not swapped")
	}
	if r.NumChildren() != 1 || c.Parent != r {
		t.Error("children should move to the replacement")
	}
	if a.NumChildren() != 0 {
		t.Error("old node should have no children")
	}
}

func TestSceneReplaceRoot(t *testing.T) {
	s := NewScene()
	old := s.Root()
	child := NewGroup("child")
	s.Insert(old, child)

	r := NewGroup("newroot")
	s.Replace(old, r)
	if s.Root() != r {
		t.Error("Root() should be the replacement")
	}
	if child.Parent != r {
		t.Error("child should move to the new root")
	}
}

func TestSceneHandleRemove(t *testing.T) {
	s := NewScene()
	calls := 0
	h := s.OnNodeUpdated(func(NodeUpdatedEvent) { calls++ })
	s.Update(s.Root())
	h.Remove()
	s.Update(s.Root())
	h.Remove() // second remove is a no-op
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
