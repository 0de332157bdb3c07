package canopy

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures a ViewStateManager. Colors are written as CSS strings in
// YAML, e.g.
//
//	highlightColor: "rgba(255, 0, 0, 1)"
//	outlineColor: magenta
//	outlineWidth: 2
//	showSelectionBoundingBox: true
//	recursiveSelection: false
type Options struct {
	// HighlightColor is blended into selected nodes' materials by its alpha.
	// An alpha of exactly 0 disables highlighting.
	HighlightColor Color `yaml:"highlightColor"`

	OutlineColor Color   `yaml:"outlineColor"`
	OutlineWidth float64 `yaml:"outlineWidth"`

	// ShowSelectionBoundingBox keeps one overlay box per selected node.
	ShowSelectionBoundingBox bool `yaml:"showSelectionBoundingBox"`

	// RecursiveSelection makes deselecting a node also deselect its ancestors.
	RecursiveSelection bool `yaml:"recursiveSelection"`

	// Debug enables node reference checks that panic on misuse.
	Debug bool `yaml:"debug"`

	// Logger receives debug output. Nil means zap.NewNop().
	Logger *zap.Logger `yaml:"-"`
}

// DefaultOptions returns the options used by New when none are given.
func DefaultOptions() Options {
	return Options{
		HighlightColor:           Color{R: 1, A: 1},
		OutlineColor:             Color{R: 1, B: 1, A: 1},
		OutlineWidth:             1,
		ShowSelectionBoundingBox: true,
	}
}

// LoadOptions parses YAML on top of DefaultOptions.
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("canopy: load options: %w", err)
	}
	if opts.OutlineWidth < 0 {
		return Options{}, fmt.Errorf("canopy: load options: outlineWidth %v is negative", opts.OutlineWidth)
	}
	return opts, nil
}
