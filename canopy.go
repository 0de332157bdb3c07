package canopy

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a material is converted to an ebiten.ColorScale.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is fully transparent black. Used as a highlight color it
// disables highlighting entirely.
var ColorTransparent = Color{}

// Box3 is an axis-aligned box in a node's local coordinate space.
type Box3 struct {
	Min, Max mgl64.Vec3
}

// IsEmpty reports whether the box has no volume on any axis.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Size returns the extent of the box on each axis.
func (b Box3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box. Bit 0 of the index selects
// Max on X, bit 1 on Y and bit 2 on Z.
func (b Box3) Corners() [8]mgl64.Vec3 {
	var c [8]mgl64.Vec3
	for i := range c {
		v := b.Min
		if i&1 != 0 {
			v[0] = b.Max[0]
		}
		if i&2 != 0 {
			v[1] = b.Max[1]
		}
		if i&4 != 0 {
			v[2] = b.Max[2]
		}
		c[i] = v
	}
	return c
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
