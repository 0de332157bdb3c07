package canopy

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidNodeReference is reported for nodes that are not part of the
// attached scene.
var ErrInvalidNodeReference = errors.New("invalid node reference")

// globalDebug mirrors the most recently set manager debug flag so that node
// operations (which lack a manager pointer) can check it cheaply. Only valid
// with a single manager; multiple managers with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLogger receives tree warnings raised from Node methods.
var debugLogger = zap.NewNop()

// SetDebugMode enables or disables debug mode. When enabled, passing a
// disposed node or a node outside the attached scene panics, and tree depth
// and child count warnings are logged.
func (m *ViewStateManager) SetDebugMode(enabled bool) {
	m.debug = enabled
	globalDebug = enabled
	debugLogger = m.log
}

// ValidateNodes returns an error wrapping ErrInvalidNodeReference for the
// first node that is nil, disposed, or not reachable from the scene root.
// Setters do not call it; callers that take node references from untrusted
// sources can.
func (m *ViewStateManager) ValidateNodes(nodes []*Node) error {
	for _, n := range nodes {
		if n == nil {
			return fmt.Errorf("canopy: nil node: %w", ErrInvalidNodeReference)
		}
		if m.scene == nil || !m.scene.Contains(n) {
			return fmt.Errorf("canopy: node %q (ID %d): %w", n.Name, n.ID, ErrInvalidNodeReference)
		}
	}
	return nil
}

// debugCheckNodes panics when debug mode is on and any node fails ValidateNodes.
func (m *ViewStateManager) debugCheckNodes(op string, nodes []*Node) {
	if !m.debug {
		return
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		debugCheckDisposed(n, op)
		if err := m.ValidateNodes([]*Node{n}); err != nil {
			panic(fmt.Sprintf("canopy debug: %s: %v", op, err))
		}
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("canopy debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name), zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth))
	}
}

// debugCheckChildCount warns if a node has more than 10000 children.
const debugMaxChildCount = 10000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			zap.String("node", n.Name), zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount))
	}
}
