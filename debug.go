package arbor

import (
	"fmt"
	"time"
)

// globalDebug mirrors the most recently set Stage debug flag so that node
// operations, which have no stage reference, can run their checks.
var globalDebug bool

// debugStats holds per-frame timing and tree metrics.
// Only populated when Stage.debug is true.
type debugStats struct {
	tickTime  time.Duration
	drawTime  time.Duration
	nodeCount int
	maxDepth  int
}

// debugLog reports frame stats at debug level.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("arbor: frame",
		"tick", stats.tickTime,
		"draw", stats.drawTime,
		"total", stats.tickTime+stats.drawTime,
		"nodes", stats.nodeCount,
		"depth", stats.maxDepth,
	)
}

// countNodes returns the number of nodes in n's subtree and its depth,
// counting n at the given depth.
func countNodes(n *Node, depth int) (count, maxDepth int) {
	count, maxDepth = 1, depth
	for _, c := range n.children {
		cc, cd := countNodes(c, depth+1)
		count += cc
		maxDepth = max(maxDepth, cd)
	}
	return count, maxDepth
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth past which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("arbor: deep tree", "depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugMaxChildCount is the child count past which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("arbor: wide node", "children", len(n.children), "threshold", debugMaxChildCount, "node", n.Name)
	}
}
