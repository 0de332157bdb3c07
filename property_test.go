package canopy

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// propTree builds a random tree under a fresh scene. Every other node carries
// the shared material.
func propTree(t *rapid.T, s *Scene, mat *Material) []*Node {
	count := rapid.IntRange(1, 14).Draw(t, "nodes")
	all := []*Node{s.Root()}
	for i := 0; i < count; i++ {
		parent := all[rapid.IntRange(0, len(all)-1).Draw(t, fmt.Sprintf("parent%d", i))]
		var n *Node
		if i%2 == 0 {
			n = NewMeshNode(fmt.Sprintf("n%d", i), mat, unitBox())
		} else {
			n = NewGroup(fmt.Sprintf("n%d", i))
		}
		s.Insert(parent, n)
		all = append(all, n)
	}
	return all
}

// reachable lists the nodes currently in the scene, in pre-order.
func reachable(s *Scene) []*Node {
	var out []*Node
	s.Root().Traverse(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

// checkInvariants recomputes every inherited flag from the own flags and
// compares it with what the manager recorded. Counts are taken over the
// nodes reachable from the scene root, so state left on detached nodes
// shows up as a mismatch.
func checkInvariants(t *rapid.T, m *ViewStateManager, s *Scene) {
	records := 0
	clones := 0
	for _, n := range reachable(s) {
		st := m.State(n)
		if st != nil {
			records++
			if !st.needed() {
				t.Fatalf("%s: record carries nothing but was not pruned", n.Name)
			}
			if st.NeedsMaterialUpdate() {
				t.Fatalf("%s: material rebuild left pending", n.Name)
			}
		}

		wantAncSel := false
		var wantTint Color
		wantHasTint := false
		wantOverrides := false
		if _, ok := m.Opacity(n); ok {
			wantOverrides = true
		}
		for p := n.Parent; p != nil; p = p.Parent {
			if m.SelectionState(p) {
				wantAncSel = true
			}
			if !wantHasTint {
				if pst := m.State(p); pst != nil {
					if c, ok := pst.TintColor(); ok {
						wantTint, wantHasTint = c, true
					}
				}
			}
			if _, ok := m.Opacity(p); ok {
				wantOverrides = true
			}
		}

		var gotAncSel, gotHasTint, gotOverrides bool
		var gotTint Color
		if st != nil {
			gotAncSel = st.AncestorSelected()
			gotTint, gotHasTint = st.AncestorTintColor()
			gotOverrides = st.AncestorOverridesOpacity()
		}
		if gotAncSel != wantAncSel {
			t.Fatalf("%s: ancestorSelected = %v, want %v", n.Name, gotAncSel, wantAncSel)
		}
		if gotHasTint != wantHasTint || (wantHasTint && gotTint != wantTint) {
			t.Fatalf("%s: ancestor tint = %v/%v, want %v/%v", n.Name, gotTint, gotHasTint, wantTint, wantHasTint)
		}
		if gotOverrides != wantOverrides {
			t.Fatalf("%s: ancestorOverridesOpacity = %v, want %v", n.Name, gotOverrides, wantOverrides)
		}

		_, ownTint := m.TintColor(n)
		wantClone := n.Material != nil && (ownTint || wantAncSel || m.SelectionState(n) || wantOverrides)
		gotClone := st != nil && st.Material() != nil
		if gotClone != wantClone {
			t.Fatalf("%s: has clone = %v, want %v", n.Name, gotClone, wantClone)
		}
		if gotClone {
			clones++
			if st.Material().Name != n.Material.Name {
				t.Fatalf("%s: clone of %q, node draws %q", n.Name, st.Material().Name, n.Material.Name)
			}
		}
	}
	if records != m.StateCount() {
		t.Fatalf("StateCount = %d, but %d records found in the tree", m.StateCount(), records)
	}
	if m.Materials().InUse() != clones {
		t.Fatalf("InUse = %d, want %d", m.Materials().InUse(), clones)
	}
	if m.Overlay().Len() != len(m.SelectedNodes()) {
		t.Fatalf("overlay boxes = %d, selected = %d", m.Overlay().Len(), len(m.SelectedNodes()))
	}
	for _, n := range m.SelectedNodes() {
		if !s.Contains(n) {
			t.Fatalf("%s: selected but not in the scene", n.Name)
		}
	}
	for _, n := range m.OutlinedNodes() {
		if !s.Contains(n) {
			t.Fatalf("%s: outlined but not in the scene", n.Name)
		}
	}
}

func TestPropertyStateConsistency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewScene()
		mat := NewMaterial("shared", ColorWhite)
		alt := NewMaterial("alt", Color{G: 1, A: 1})
		all := propTree(t, s, mat)
		m := New(DefaultOptions())
		m.AttachScene(s)
		defer m.Close()

		colors := []Color{{R: 1, A: 1}, {G: 1, A: 0.5}, {B: 1, A: 1}}
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			n := rapid.SampledFrom(all).Draw(t, "node")
			recursive := rapid.Bool().Draw(t, "recursive")
			switch rapid.IntRange(0, 12).Draw(t, "op") {
			case 0:
				m.SetSelectionState([]*Node{n}, true, recursive, false)
			case 1:
				m.SetSelectionState([]*Node{n}, false, recursive, false)
			case 2:
				m.SetRecursiveSelection(!m.RecursiveSelection())
			case 3:
				c := rapid.SampledFrom(colors).Draw(t, "color")
				m.SetTintColor([]*Node{n}, c, recursive)
			case 4:
				m.ClearTintColor([]*Node{n}, recursive)
			case 5:
				o := rapid.Float64Range(0, 1).Draw(t, "opacity")
				m.SetOpacity([]*Node{n}, o, recursive)
			case 6:
				m.ClearOpacity([]*Node{n}, recursive)
			case 7:
				m.SetVisibilityState([]*Node{n}, rapid.Bool().Draw(t, "visible"), recursive, rapid.Bool().Draw(t, "force"))
			case 8:
				s.Insert(n, NewMeshNode(fmt.Sprintf("late%d", i), mat, unitBox()))
			case 9:
				if n != s.Root() {
					s.Remove(n)
				}
			case 10:
				var r *Node
				if rapid.Bool().Draw(t, "mesh") {
					r = NewMeshNode(fmt.Sprintf("swap%d", i), mat, unitBox())
				} else {
					r = NewGroup(fmt.Sprintf("swap%d", i))
				}
				s.Replace(n, r)
			case 11:
				switch n.Material {
				case mat:
					n.Material = alt
				case alt:
					n.Material = mat
				}
				s.Update(n)
			case 12:
				m.SetOutliningState([]*Node{n}, !m.OutliningState(n), recursive)
			}
			all = reachable(s)
			checkInvariants(t, m, s)
		}

		originals := make(map[*Node]*Material, len(all))
		for _, n := range all {
			originals[n] = n.Material
		}
		m.ApplyNodeStates()
		m.RevertNodeStates()
		for _, n := range all {
			if n.Material != originals[n] {
				t.Fatalf("%s: material not restored after revert", n.Name)
			}
		}
	})
}

func TestPropertyVisibilityIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewScene()
		all := propTree(t, s, nil)
		for _, n := range all {
			n.Visible = rapid.Bool().Draw(t, "intrinsic")
		}
		m := New(DefaultOptions())
		m.AttachScene(s)
		defer m.Close()

		events := 0
		m.OnVisibilityChanged(func(VisibilityChangedEvent) { events++ })

		target := rapid.SampledFrom(all).Draw(t, "node")
		visible := rapid.Bool().Draw(t, "visible")
		recursive := rapid.Bool().Draw(t, "recursive")
		force := rapid.Bool().Draw(t, "force")

		m.SetVisibilityState([]*Node{target}, visible, recursive, force)
		first := events
		m.SetVisibilityState([]*Node{target}, visible, recursive, force)
		if events != first {
			t.Fatalf("repeating the same call fired %d more events", events-first)
		}
		if first > 1 {
			t.Fatalf("one call fired %d events", first)
		}

		m.ResetVisibility()
		if m.StateCount() != 0 {
			t.Fatalf("StateCount = %d after reset, want 0", m.StateCount())
		}
		for _, n := range all {
			if m.VisibilityState(n) != n.Visible {
				t.Fatalf("%s: visibility not back to intrinsic", n.Name)
			}
		}
	})
}
