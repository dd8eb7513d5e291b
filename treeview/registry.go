package treeview

import "github.com/phanxgames/arbor"

// Role names one of the six widgets a tracked item owns.
type Role uint8

const (
	RoleNone       Role = iota
	RoleNode            // outer container holding the row and the child slot
	RoleRow             // disclosure, icon and label strip
	RoleDisclosure      // expand/collapse control
	RoleIcon            // item icon
	RoleLabel           // item title
	RoleChildSlot       // container parenting the nodes of child items
)

const numRoles = 6

// Roles lists every widget role in allocation order.
var Roles = [numRoles]Role{RoleNode, RoleRow, RoleDisclosure, RoleIcon, RoleLabel, RoleChildSlot}

// deregisterOrder is the reverse-allocation order entries are dropped in.
var deregisterOrder = [numRoles]Role{RoleChildSlot, RoleDisclosure, RoleIcon, RoleLabel, RoleRow, RoleNode}

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleNode:
		return "node"
	case RoleRow:
		return "row"
	case RoleDisclosure:
		return "disclosure"
	case RoleIcon:
		return "icon"
	case RoleLabel:
		return "label"
	case RoleChildSlot:
		return "child slot"
	default:
		return "unknown"
	}
}

func (r Role) index() int {
	if r == RoleNone || r > RoleChildSlot {
		panic("treeview: invalid role " + r.String())
	}
	return int(r) - 1
}

// Widgets holds the widgets owned by one tracked item.
type Widgets struct {
	Node       *arbor.Widget
	Row        *arbor.Widget
	Disclosure *arbor.Widget
	Icon       *arbor.Widget
	Label      *arbor.Widget
	ChildSlot  *arbor.Widget
}

// Get returns the widget for role.
func (w Widgets) Get(role Role) *arbor.Widget {
	switch role {
	case RoleNode:
		return w.Node
	case RoleRow:
		return w.Row
	case RoleDisclosure:
		return w.Disclosure
	case RoleIcon:
		return w.Icon
	case RoleLabel:
		return w.Label
	case RoleChildSlot:
		return w.ChildSlot
	}
	return nil
}

type entry struct {
	widgets Widgets
	// IDs are captured at registration; disposing a widget zeroes its ID.
	ids [numRoles]arbor.WidgetID
}

// Registry maps tracked items to the widgets they own and back. Every
// tracked item has exactly one widget per role, and every lookup in one
// direction round-trips through the other.
type Registry[K comparable] struct {
	entries  map[K]*entry
	order    []K
	byWidget [numRoles]map[arbor.WidgetID]K
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	r := &Registry[K]{entries: make(map[K]*entry)}
	for i := range r.byWidget {
		r.byWidget[i] = make(map[arbor.WidgetID]K)
	}
	return r
}

// Register records all six widgets for item at once. It panics with a
// *ConsistencyError if item is already tracked, a widget is missing or a
// widget is already owned by some item.
func (r *Registry[K]) Register(item K, widgets Widgets) {
	if _, ok := r.entries[item]; ok {
		panic(violation("register", item, RoleNone, "item already tracked"))
	}
	e := &entry{widgets: widgets}
	seen := make(map[arbor.WidgetID]Role, numRoles)
	for _, role := range Roles {
		w := widgets.Get(role)
		if w == nil || w.IsDisposed() {
			panic(violation("register", item, role, "missing widget"))
		}
		if owner, _, ok := r.Lookup(w.ID); ok {
			panic(violation("register", item, role, "widget %d already owned by %v", w.ID, owner))
		}
		if prev, ok := seen[w.ID]; ok {
			panic(violation("register", item, role, "widget %d also used as %s", w.ID, prev))
		}
		seen[w.ID] = role
		e.ids[role.index()] = w.ID
	}
	for _, role := range Roles {
		r.byWidget[role.index()][e.ids[role.index()]] = item
	}
	r.entries[item] = e
	r.order = append(r.order, item)
}

// Widget returns the widget item owns in role.
func (r *Registry[K]) Widget(item K, role Role) (*arbor.Widget, bool) {
	e, ok := r.entries[item]
	if !ok {
		return nil, false
	}
	return e.widgets.Get(role), true
}

// Widgets returns every widget item owns.
func (r *Registry[K]) Widgets(item K) (Widgets, bool) {
	e, ok := r.entries[item]
	if !ok {
		return Widgets{}, false
	}
	return e.widgets, true
}

// Item returns the item owning the widget with id in role.
func (r *Registry[K]) Item(role Role, id arbor.WidgetID) (K, bool) {
	item, ok := r.byWidget[role.index()][id]
	return item, ok
}

// Lookup returns the item owning the widget with id in any role.
func (r *Registry[K]) Lookup(id arbor.WidgetID) (K, Role, bool) {
	for _, role := range Roles {
		if item, ok := r.byWidget[role.index()][id]; ok {
			return item, role, true
		}
	}
	var zero K
	return zero, RoleNone, false
}

// Tracked reports whether item has registered widgets.
func (r *Registry[K]) Tracked(item K) bool {
	_, ok := r.entries[item]
	return ok
}

// Len returns the number of tracked items.
func (r *Registry[K]) Len() int {
	return len(r.entries)
}

// Items returns the tracked items in registration order.
func (r *Registry[K]) Items() []K {
	out := make([]K, len(r.order))
	copy(out, r.order)
	return out
}

// Deregister drops every entry for item, child slot first and node last, and
// returns the widgets so the caller can destroy them. It panics with a
// *ConsistencyError if item is not tracked.
func (r *Registry[K]) Deregister(item K) Widgets {
	e, ok := r.entries[item]
	if !ok {
		panic(violation("deregister", item, RoleNone, "item not tracked"))
	}
	for _, role := range deregisterOrder {
		delete(r.byWidget[role.index()], e.ids[role.index()])
	}
	delete(r.entries, item)
	for i, k := range r.order {
		if k == item {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return e.widgets
}
