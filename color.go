package canopy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidColor is returned (wrapped) when a CSS color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// ColorFromABGR unpacks a 32-bit color laid out as 0xAABBGGRR.
func ColorFromABGR(abgr uint32) Color {
	return Color{
		R: float64(abgr&0xff) / 255,
		G: float64((abgr>>8)&0xff) / 255,
		B: float64((abgr>>16)&0xff) / 255,
		A: float64((abgr>>24)&0xff) / 255,
	}
}

// ABGR packs the color as 0xAABBGGRR. Components are clamped to [0, 1].
func (c Color) ABGR() uint32 {
	return uint32(channel8(c.A))<<24 |
		uint32(channel8(c.B))<<16 |
		uint32(channel8(c.G))<<8 |
		uint32(channel8(c.R))
}

// CSS formats the color as an rgba() functional notation string.
func (c Color) CSS() string {
	a := strconv.FormatFloat(clamp01(c.A), 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel8(c.R), channel8(c.G), channel8(c.B), a)
}

// ParseColor parses a CSS color: a named color, "transparent", #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb(r, g, b) or rgba(r, g, b, a).
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return Color{}, fmt.Errorf("canopy: parse color %q: %w", s, ErrInvalidColor)
	case v == "transparent":
		return ColorTransparent, nil
	case strings.HasPrefix(v, "#"):
		c, err := parseHexColor(v)
		if err != nil {
			return Color{}, fmt.Errorf("canopy: parse color %q: %w", s, err)
		}
		return c, nil
	case strings.HasPrefix(v, "rgb"):
		c, err := parseRGBFunc(v)
		if err != nil {
			return Color{}, fmt.Errorf("canopy: parse color %q: %w", s, err)
		}
		return c, nil
	}
	named, ok := colornames.Map[v]
	if !ok {
		return Color{}, fmt.Errorf("canopy: parse color %q: %w", s, ErrInvalidColor)
	}
	return Color{
		R: float64(named.R) / 255,
		G: float64(named.G) / 255,
		B: float64(named.B) / 255,
		A: float64(named.A) / 255,
	}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML decodes a CSS color string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the color as a CSS rgba() string.
func (c Color) MarshalYAML() (any, error) {
	return c.CSS(), nil
}

// parseHexColor handles the short and long hex forms, with optional alpha.
// go-colorful only knows #rgb and #rrggbb, so alpha digits are split off first.
func parseHexColor(v string) (Color, error) {
	digits := v[1:]
	alpha := 1.0
	switch len(digits) {
	case 3, 6:
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(digits[3:], 2), 16, 8)
		if err != nil {
			return Color{}, ErrInvalidColor
		}
		alpha = float64(a) / 255
		digits = digits[:3]
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Color{}, ErrInvalidColor
		}
		alpha = float64(a) / 255
		digits = digits[:6]
	default:
		return Color{}, ErrInvalidColor
	}
	cf, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, ErrInvalidColor
	}
	return Color{R: cf.R, G: cf.G, B: cf.B, A: alpha}, nil
}

func parseRGBFunc(v string) (Color, error) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return Color{}, ErrInvalidColor
	}
	name := strings.TrimSpace(v[:open])
	if name != "rgb" && name != "rgba" {
		return Color{}, ErrInvalidColor
	}
	parts := strings.Split(v[open+1:len(v)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, ErrInvalidColor
	}
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		p := strings.TrimSpace(parts[i])
		if strings.HasSuffix(p, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			if err != nil {
				return Color{}, ErrInvalidColor
			}
			rgb[i] = clamp01(f / 100)
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Color{}, ErrInvalidColor
		}
		rgb[i] = clamp01(f / 255)
	}
	alpha := 1.0
	if len(parts) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, ErrInvalidColor
		}
		alpha = clamp01(f)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

// blendRGB linearly interpolates the RGB channels of c toward target by t.
// Alpha of c is preserved.
func blendRGB(c, target Color, t float64) Color {
	from := colorful.Color{R: c.R, G: c.G, B: c.B}
	to := colorful.Color{R: target.R, G: target.G, B: target.B}
	out := from.BlendRgb(to, clamp01(t))
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
