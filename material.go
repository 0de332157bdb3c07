package canopy

import "github.com/hajimehoshi/ebiten/v2"

// Material is the render-facing description of how a node's geometry is
// shaded. canopy treats it as a value bag: the renderer decides what each
// field means on the GPU.
type Material struct {
	Name        string
	Color       Color
	Emissive    Color
	Specular    Color
	Opacity     float64
	Transparent bool
	BlendMode   BlendMode

	// Texture is optional and opaque to canopy. Clones share it.
	Texture *ebiten.Image
}

// NewMaterial creates an opaque material with the given base color.
func NewMaterial(name string, c Color) *Material {
	return &Material{Name: name, Color: c, Opacity: 1}
}

// copyFrom overwrites every field of m with src.
func (m *Material) copyFrom(src *Material) {
	*m = *src
}

// ColorScale returns the premultiplied color scale a renderer applies when
// drawing with this material.
func (m *Material) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := clamp01(m.Color.A * m.Opacity)
	cs.Scale(float32(m.Color.R*a), float32(m.Color.G*a), float32(m.Color.B*a), float32(a))
	return cs
}

// Blend returns the ebiten blend for this material. Transparent materials
// never use an opaque copy.
func (m *Material) Blend() ebiten.Blend {
	if m.Transparent && m.BlendMode == BlendNone {
		return BlendNormal.EbitenBlend()
	}
	return m.BlendMode.EbitenBlend()
}

// --- Material cache ---

// MaterialCache hands out private clones of shared materials so the view
// state can recolor a node without touching every other node that references
// the same original. Released clones are kept on a free list and reused by
// the next Acquire. There is no reference counting: each clone has exactly
// one owner.
type MaterialCache struct {
	free     []*Material
	acquired int
	created  int
}

// Acquire returns a clone of original. After warmup, Acquire/Release are zero-alloc.
func (c *MaterialCache) Acquire(original *Material) *Material {
	var m *Material
	if n := len(c.free); n > 0 {
		m = c.free[n-1]
		c.free[n-1] = nil
		c.free = c.free[:n-1]
	} else {
		m = &Material{}
		c.created++
	}
	m.copyFrom(original)
	c.acquired++
	return m
}

// Release returns a clone to the cache. The texture reference is dropped here
// so a pooled material never keeps an image alive.
func (c *MaterialCache) Release(m *Material) {
	if m == nil {
		return
	}
	*m = Material{}
	c.free = append(c.free, m)
	c.acquired--
}

// InUse reports how many acquired materials have not been released.
func (c *MaterialCache) InUse() int {
	return c.acquired
}

// Pooled reports how many released materials are waiting for reuse.
func (c *MaterialCache) Pooled() int {
	return len(c.free)
}

// Created reports how many materials the cache has ever allocated.
func (c *MaterialCache) Created() int {
	return c.created
}
