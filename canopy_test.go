package canopy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Box3 ---

func TestBox3IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		box    Box3
		expect bool
	}{
		{"unit", Box3{Max: mgl64.Vec3{1, 1, 1}}, false},
		{"point", Box3{}, false},
		{"flat", Box3{Max: mgl64.Vec3{1, 0, 1}}, false},
		{"inverted x", Box3{Min: mgl64.Vec3{1, 0, 0}}, true},
		{"inverted z", Box3{Min: mgl64.Vec3{0, 0, 2}, Max: mgl64.Vec3{1, 1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.IsEmpty(); got != tt.expect {
				t.Errorf("Box3%v.IsEmpty() = %v, want %v", tt.box, got, tt.expect)
			}
		})
	}
}

func TestBox3Corners(t *testing.T) {
	b := Box3{Min: mgl64.Vec3{-1, -2, -3}, Max: mgl64.Vec3{1, 2, 3}}
	c := b.Corners()
	if c[0] != b.Min {
		t.Errorf("corner 0 = %v, want Min", c[0])
	}
	if c[7] != b.Max {
		t.Errorf("corner 7 = %v, want Max", c[7])
	}
	if c[1] != (mgl64.Vec3{1, -2, -3}) {
		t.Errorf("corner 1 = %v", c[1])
	}
	if c[6] != (mgl64.Vec3{-1, 2, 3}) {
		t.Errorf("corner 6 = %v", c[6])
	}
}

func TestBox3Size(t *testing.T) {
	b := Box3{Min: mgl64.Vec3{-1, 0, 2}, Max: mgl64.Vec3{1, 4, 3}}
	if got := b.Size(); got != (mgl64.Vec3{2, 4, 1}) {
		t.Errorf("Size() = %v", got)
	}
}

// --- BlendMode.EbitenBlend ---

func TestBlendModeEbitenBlend(t *testing.T) {
	modes := []struct {
		mode   BlendMode
		name   string
		expect ebiten.Blend
	}{
		{BlendNormal, "Normal", ebiten.BlendSourceOver},
		{BlendAdd, "Add", ebiten.BlendLighter},
		{BlendNone, "None", ebiten.BlendCopy},
		{BlendMode(200), "unknown", ebiten.BlendSourceOver},
	}
	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			if got := m.mode.EbitenBlend(); got != m.expect {
				t.Errorf("BlendMode(%d).EbitenBlend() = %+v, want %+v", m.mode, got, m.expect)
			}
		})
	}
}
