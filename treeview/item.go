package treeview

import "github.com/phanxgames/arbor"

// Item is the capability a host supplies for every domain item shown in a
// tree view. The engine never looks past these four accessors.
type Item interface {
	Title() string
	Icon() arbor.Icon
	IsSelected() bool
	IsHovered() bool
}

// Source resolves item identities for the engine.
type Source[K comparable] interface {
	// Item returns the capability for id, or false if the host no longer
	// knows it.
	Item(id K) (Item, bool)
	// Children returns the declared children of id. Children that are not
	// tracked by the tree view are ignored.
	Children(id K) []K
}

// Reparent reports that Item now has Parent as its parent.
type Reparent[K comparable] struct {
	Item   K
	Parent K
}

// Changes is the categorized change feed for one tick. Each category is
// processed in field order.
type Changes[K comparable] struct {
	// Changed lists items newly observed or whose title, icon, selection or
	// hover state changed. Parents must precede their children.
	Changed []K
	// Reparented lists items whose parent changed to another item.
	Reparented []Reparent[K]
	// Orphaned lists items that lost their parent.
	Orphaned []K
	// Rechilded lists items whose set of children changed.
	Rechilded []K
	// Removed lists items deleted by the host.
	Removed []K
}

// Empty reports whether c carries no notifications.
func (c Changes[K]) Empty() bool {
	return len(c.Changed) == 0 && len(c.Reparented) == 0 && len(c.Orphaned) == 0 &&
		len(c.Rechilded) == 0 && len(c.Removed) == 0
}
