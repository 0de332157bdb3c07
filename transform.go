package canopy

import "github.com/go-gl/mathgl/mgl64"

// WorldTransform returns the node's transform relative to the scene root:
// Parent.WorldTransform() * Transform. Computed on demand; nothing is cached
// because canopy never sees transform edits.
func (n *Node) WorldTransform() mgl64.Mat4 {
	m := n.Transform
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Transform.Mul4(m)
	}
	return m
}

// SetPosition replaces the translation part of the local transform.
func (n *Node) SetPosition(x, y, z float64) {
	n.Transform.SetCol(3, mgl64.Vec4{x, y, z, 1})
}

// Position returns the translation part of the local transform.
func (n *Node) Position() mgl64.Vec3 {
	return n.Transform.Col(3).Vec3()
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldTransform())
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
// Returns p unchanged if the world transform is singular.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	w := n.WorldTransform()
	if det := w.Det(); det > -1e-12 && det < 1e-12 {
		return p
	}
	return mgl64.TransformCoordinate(p, w.Inv())
}

// orientedCorners returns the node's local bounds transformed to world space.
// The result is the node's own oriented box, not an axis-aligned envelope.
func orientedCorners(n *Node) [8]mgl64.Vec3 {
	w := n.WorldTransform()
	c := n.Bounds.Corners()
	for i := range c {
		c[i] = mgl64.TransformCoordinate(c[i], w)
	}
	return c
}

// selectionBounds returns the local-space box a selection box is drawn with:
// the node's own bounds, grown to cover every descendant's bounds. A node
// with no geometry anywhere below it gets a zero-size box at its origin.
func selectionBounds(n *Node) Box3 {
	out := n.Bounds
	inv := n.WorldTransform()
	if det := inv.Det(); det > -1e-12 && det < 1e-12 {
		if out.IsEmpty() {
			return Box3{}
		}
		return out
	}
	inv = inv.Inv()
	for _, c := range n.children {
		c.Traverse(func(d *Node) bool {
			if d.Bounds.IsEmpty() {
				return true
			}
			rel := inv.Mul4(d.WorldTransform())
			for _, p := range d.Bounds.Corners() {
				out = out.extend(mgl64.TransformCoordinate(p, rel))
			}
			return true
		})
	}
	if out.IsEmpty() {
		return Box3{}
	}
	return out
}

// extend grows b to contain p. An empty box becomes the single point p.
func (b Box3) extend(p mgl64.Vec3) Box3 {
	if b.IsEmpty() {
		return Box3{Min: p, Max: p}
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// --- World opacity ---

// effectiveOwnOpacity returns the opacity override for n if one is recorded,
// else the node's intrinsic Opacity.
func effectiveOwnOpacity(n *Node, st *NodeState) float64 {
	if st != nil && st.hasOpacity {
		return st.opacity
	}
	return n.Opacity
}

// worldOpacity multiplies the effective opacity of n and every ancestor.
// lookup returns the recorded state for a node, or nil.
func worldOpacity(n *Node, lookup func(*Node) *NodeState) float64 {
	o := 1.0
	for p := n; p != nil; p = p.Parent {
		o *= effectiveOwnOpacity(p, lookup(p))
	}
	return o
}
