// Package treeview keeps a tree of arbor widgets in step with a host's item
// hierarchy.
//
// A TreeView observes a per-tick categorized change feed ([Changes]) and
// turns it into the smallest set of widget operations: one node, row,
// disclosure control, icon, label and child slot per tracked item. Expanded
// state, highlight and sibling order survive structural edits because
// widgets are reused rather than rebuilt.
//
// Each tick runs three passes in a fixed order:
//
//	stats := tv.Tick(changes) // Reconcile, ProcessDisclosures, SortChildren
//
// The engine is single-threaded. Violations of the notification contract
// panic with a [*ConsistencyError].
package treeview

import (
	"log/slog"
	"time"

	"github.com/phanxgames/arbor"
)

// Disclosure icon names.
const (
	IconExpanded  arbor.NamedIcon = "Disclosure.Expanded"
	IconCollapsed arbor.NamedIcon = "Disclosure.Collapsed"
)

// Palette holds the row background for each highlight state.
type Palette struct {
	Selected arbor.Color
	Hovered  arbor.Color
	Neutral  arbor.Color
}

// DefaultPalette returns a blue selection and a faint hover highlight.
func DefaultPalette() Palette {
	return Palette{
		Selected: arbor.Color{R: 0, G: 0.4, B: 1, A: 0.3},
		Hovered:  arbor.Color{R: 1, G: 1, B: 1, A: 0.05},
		Neutral:  arbor.ColorTransparent,
	}
}

// background picks the row color; selection wins over hover.
func (p Palette) background(item Item) arbor.Color {
	switch {
	case item.IsSelected():
		return p.Selected
	case item.IsHovered():
		return p.Hovered
	default:
		return p.Neutral
	}
}

// Config configures a TreeView. The zero Config is usable.
type Config struct {
	// IconSize sizes icons and disclosure controls and sets the child
	// indentation. Zero means arbor.IconXSmall; other undeclared sizes panic.
	IconSize arbor.IconSize
	// Font renders labels. Nil labels measure and draw nothing.
	Font *arbor.Font
	// TextColor colors labels. Zero means white.
	TextColor arbor.Color
	// Palette colors rows. The zero Palette means DefaultPalette.
	Palette Palette
	// HighlightFade animates row background changes. Zero swaps at once.
	HighlightFade time.Duration
	// InteractiveRows makes rows hit-testable so hosts can route row clicks
	// and hover through Registry.Lookup.
	InteractiveRows bool
	// Logger receives per-tick summaries at debug level. Nil discards them.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.IconSize == 0 {
		c.IconSize = arbor.IconXSmall
	}
	if c.TextColor == (arbor.Color{}) {
		c.TextColor = arbor.ColorWhite
	}
	if c.Palette == (Palette{}) {
		c.Palette = DefaultPalette()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Stats counts what one tick did.
type Stats struct {
	Created   int // items registered
	Refreshed int // already tracked items refreshed
	Moved     int // nodes moved under a new parent
	Orphaned  int // nodes moved back to the content container
	Rechilded int // disclosure visibility recounts
	Removed   int // items deregistered
	Toggled   int // disclosure toggles applied
	Sorted    int // containers re-sorted
}

// Zero reports whether nothing happened.
func (s Stats) Zero() bool {
	return s == Stats{}
}

func (s Stats) logAttrs() []any {
	return []any{
		slog.Int("created", s.Created),
		slog.Int("refreshed", s.Refreshed),
		slog.Int("moved", s.Moved),
		slog.Int("orphaned", s.Orphaned),
		slog.Int("rechilded", s.Rechilded),
		slog.Int("removed", s.Removed),
		slog.Int("toggled", s.Toggled),
		slog.Int("sorted", s.Sorted),
	}
}

// TreeView mirrors the items of a Source under a panel widget.
type TreeView[K comparable] struct {
	panel    *arbor.Widget
	source   Source[K]
	cfg      Config
	logger   *slog.Logger
	registry *Registry[K]
	content  *arbor.Widget

	// containers whose children must be re-sorted, in first-mark order
	unsorted    []*arbor.Widget
	unsortedSet map[*arbor.Widget]struct{}

	// disclosure widgets that entered the pressed state since the last pass
	pending []arbor.WidgetID

	fades map[K]*fade
}

type fade struct {
	group *arbor.TweenGroup
	to    arbor.Color
}

// New creates a tree view that builds its widgets under panel. Nothing is
// created until the first Reconcile.
func New[K comparable](panel *arbor.Widget, source Source[K], cfg Config) *TreeView[K] {
	if panel == nil {
		panic("treeview: nil panel")
	}
	cfg = cfg.withDefaults()
	cfg.IconSize.Pixels() // unsupported sizes fail here rather than mid-tick
	return &TreeView[K]{
		panel:       panel,
		source:      source,
		cfg:         cfg,
		logger:      cfg.Logger,
		registry:    NewRegistry[K](),
		unsortedSet: make(map[*arbor.Widget]struct{}),
		fades:       make(map[K]*fade),
	}
}

// Registry returns the identity registry. Callers must not mutate it.
func (tv *TreeView[K]) Registry() *Registry[K] {
	return tv.registry
}

// Content returns the container holding root item nodes, or nil before the
// first tick.
func (tv *TreeView[K]) Content() *arbor.Widget {
	return tv.content
}

// Tick runs Reconcile, ProcessDisclosures and SortChildren in that order.
// If the panel has been disposed the tree view is destroyed instead.
func (tv *TreeView[K]) Tick(changes Changes[K]) Stats {
	if tv.panel.IsDisposed() {
		if tv.content != nil {
			tv.Destroy()
		}
		return Stats{}
	}
	stats := tv.Reconcile(changes)
	stats.Toggled = tv.ProcessDisclosures()
	stats.Sorted = tv.SortChildren()
	if !stats.Zero() {
		tv.logger.Debug("tree view tick", stats.logAttrs()...)
	}
	return stats
}

// Advance steps running highlight fades by dt seconds.
func (tv *TreeView[K]) Advance(dt float32) {
	for item, f := range tv.fades {
		f.group.Update(dt)
		if f.group.Done {
			delete(tv.fades, item)
		}
	}
}

// Destroy disposes every widget the tree view created and forgets all
// tracked items. The panel itself is left alone.
func (tv *TreeView[K]) Destroy() {
	if tv.content != nil {
		tv.content.Dispose()
		tv.content = nil
	}
	tv.registry = NewRegistry[K]()
	tv.unsorted = nil
	clear(tv.unsortedSet)
	tv.pending = nil
	clear(tv.fades)
}

func (tv *TreeView[K]) ensureContent() *arbor.Widget {
	if tv.content == nil {
		tv.content = arbor.NewBox("treeview.content", arbor.Style{
			Direction: arbor.Column,
			MaxWidth:  arbor.Percent(100),
			MaxHeight: arbor.Percent(100),
			Clip:      true,
		})
		tv.panel.AddChild(tv.content)
	}
	return tv.content
}

func (tv *TreeView[K]) markUnsorted(container *arbor.Widget) {
	if _, ok := tv.unsortedSet[container]; ok {
		return
	}
	tv.unsortedSet[container] = struct{}{}
	tv.unsorted = append(tv.unsorted, container)
}

// mustWidget returns the widget item owns in role or panics.
func (tv *TreeView[K]) mustWidget(op string, item K, role Role) *arbor.Widget {
	w, ok := tv.registry.Widget(item, role)
	if !ok {
		panic(violation(op, item, role, "item not tracked"))
	}
	return w
}

func (tv *TreeView[K]) mustItem(op string, id K) Item {
	item, ok := tv.source.Item(id)
	if !ok {
		panic(violation(op, id, RoleNone, "item unknown to source"))
	}
	return item
}

// trackedChildren counts the children of id that the tree view tracks.
func (tv *TreeView[K]) trackedChildren(id K) int {
	n := 0
	for _, child := range tv.source.Children(id) {
		if tv.registry.Tracked(child) {
			n++
		}
	}
	return n
}
