package arbor

import (
	"fmt"
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and widget metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	layoutTime time.Duration
	inputTime  time.Duration
	drawTime   time.Duration
	widgets    int
	drawn      int
}

// debugLog reports frame stats through the scene logger.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		slog.Duration("layout", stats.layoutTime),
		slog.Duration("input", stats.inputTime),
		slog.Duration("draw", stats.drawTime),
		slog.Int("widgets", stats.widgets),
		slog.Int("drawn", stats.drawn))
}

// globalDebug mirrors the most recently set Scene debug flag so that widget
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLogger receives tree shape warnings while debug mode is on.
var debugLogger = discardLogger()

// debugCheckDisposed panics with a descriptive message when a disposed widget
// is used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed widget %q", op, w.Name))
	}
}

const debugMaxTreeDepth = 64

// debugCheckTreeDepth warns if the tree depth exceeds the threshold.
func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth), slog.String("widget", w.Name))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if a widget has more than debugMaxChildCount children.
func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			slog.String("widget", w.Name), slog.Int("children", len(w.children)), slog.Int("threshold", debugMaxChildCount))
	}
}

// countWidgets returns the number of widgets in the subtree rooted at w.
func countWidgets(w *Widget) int {
	n := 1
	for _, child := range w.children {
		n += countWidgets(child)
	}
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
