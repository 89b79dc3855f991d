package greenflag

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// frameStats holds per-frame counters. Only populated in debug mode.
type frameStats struct {
	frame   uint64
	threads int
	actors  int
	clones  int
	elapsed time.Duration
}

// debugLog writes one frame's stats at debug level.
func (rt *Runtime) debugLog(stats frameStats) {
	rt.log.Debug().
		Uint64("frame", stats.frame).
		Int("threads", stats.threads).
		Int("actors", stats.actors).
		Int("clones", stats.clones).
		Dur("elapsed", stats.elapsed).
		Msg("frame")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("greenflag debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		log.Warn().Str("node", n.Name).Int("depth", depth).Int("limit", debugMaxTreeDepth).Msg("tree depth exceeded")
	}
}

// debugCheckChildCount warns if a node has more children than the clone
// limit allows for in practice.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		log.Warn().Str("node", n.Name).Int("children", len(n.children)).Int("limit", debugMaxChildCount).Msg("child count exceeded")
	}
}
